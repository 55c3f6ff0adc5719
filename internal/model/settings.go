package model

// Permission mirrors the browser notification permission tri-state.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// IsValidPermission checks if a permission value is one of the tri-state set.
func IsValidPermission(p Permission) bool {
	switch p {
	case PermissionGranted, PermissionDenied, PermissionDefault:
		return true
	}
	return false
}

// Settings holds user preferences (singleton).
type Settings struct {
	Key string `json:"key"`
	// AutoSync opens a calendar deep link for every newly created goal.
	AutoSync bool `json:"auto_sync"`
	// Permission gates all scheduler alerts. Anything but "granted" makes
	// the alert path a silent no-op.
	Permission Permission `json:"permission"`
	// WebhookURL, when set, mirrors alerts to a user-provided endpoint.
	WebhookURL string `json:"webhook_url,omitempty" validate:"omitempty,url"`
}

// SetKey sets the database key for these settings.
func (s *Settings) SetKey(key string) {
	s.Key = key
}

// GetKey returns the database key for these settings.
func (s *Settings) GetKey() string {
	return s.Key
}

// AlertsEnabled returns true if scheduler alerts may be emitted.
func (s *Settings) AlertsEnabled() bool {
	return s.Permission == PermissionGranted
}

// NewSettings creates settings with defaults matching a fresh install.
func NewSettings() *Settings {
	return &Settings{
		Key:        KeySettings,
		AutoSync:   false,
		Permission: PermissionDefault,
	}
}
