package model

import (
	"time"
)

// NotificationType defines the type of notification.
type NotificationType string

// Notification types.
const (
	NotifyGoalStart NotificationType = "goal_start"
	NotifyPermGrant NotificationType = "permission_granted"
	NotifyTest      NotificationType = "test"
)

// Notification represents an alert to be shown to the user.
type Notification struct {
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Icon      string            `json:"icon,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewNotification creates a new notification.
func NewNotification(t NotificationType, title, message string) *Notification {
	return &Notification{
		Type:      t,
		Title:     title,
		Message:   message,
		Fields:    make(map[string]string),
		Timestamp: time.Now(),
	}
}

// WithField adds a field to the notification.
func (n *Notification) WithField(key, value string) *Notification {
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}

// WithIcon sets the icon reference shown by the platform surface.
func (n *Notification) WithIcon(icon string) *Notification {
	n.Icon = icon
	return n
}

// TypeLabel returns a human-readable label for the notification type.
func (n *Notification) TypeLabel() string {
	switch n.Type {
	case NotifyGoalStart:
		return "Task Starting"
	case NotifyPermGrant:
		return "Notifications Enabled"
	case NotifyTest:
		return "Test"
	default:
		return "Alert"
	}
}
