package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	goals       []*model.Goal
	todayMood   *model.MoodEntry
	recentMoods []*model.MoodEntry

	// Repositories
	goalRepo *storage.GoalRepo
	moodRepo *storage.MoodRepo

	// UI state
	cursor     int
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	// Configuration
	refreshInterval time.Duration
	maxMoodDays     int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	GoalRepo        *storage.GoalRepo
	MoodRepo        *storage.MoodRepo
	RefreshInterval time.Duration
	MaxMoodDays     int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.MaxMoodDays == 0 {
		config.MaxMoodDays = 7
	}

	return &DashboardModel{
		goalRepo:        config.GoalRepo,
		moodRepo:        config.MoodRepo,
		refreshInterval: config.RefreshInterval,
		maxMoodDays:     config.MaxMoodDays,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.goals)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case " ", "enter":
		if err := m.toggleSelected(); err != nil {
			m.err = err
		} else {
			m.loadData()
		}
		return m, nil

	case "m":
		m.setMessage("Use 'mindfulmate mood log <1-5>' to log your mood", 3*time.Second)
		return m, nil

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		errBox := StyleError.Render(fmt.Sprintf("Error: %v", m.err))
		sections = append(sections, errBox)
	}

	if m.message != "" {
		msgBox := StyleWarning.Render(m.message)
		sections = append(sections, msgBox)
	}

	moodComp := NewMoodComponent(m.todayMood, m.recentMoods, m.width)
	sections = append(sections, moodComp.View())

	goalsComp := NewGoalsComponent(m.goals, m.cursor, m.width, 0)
	sections = append(sections, goalsComp.View())

	completed := 0
	for _, g := range m.goals {
		if g.Completed {
			completed++
		}
	}
	progressComp := NewProgressComponent(completed, len(m.goals), m.width)
	if view := progressComp.View(); view != "" {
		sections = append(sections, view)
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("MindfulMate Dashboard")
	now := time.Now().Format("Mon Jan 2, 15:04:05")
	timeStr := StyleSubtitle.Render(now)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// loadData loads all data from repositories.
func (m *DashboardModel) loadData() {
	goals, err := m.goalRepo.List()
	if err != nil {
		m.err = err
		return
	}
	m.goals = goals

	if m.cursor >= len(m.goals) {
		m.cursor = len(m.goals) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	today, err := m.moodRepo.Today()
	if err != nil {
		if !storage.IsErrKeyNotFound(err) {
			m.err = err
			return
		}
		today = nil
	}
	m.todayMood = today

	recent, err := m.moodRepo.ListRecent(m.maxMoodDays)
	if err != nil {
		// Trend row is optional, don't fail on error
		recent = nil
	}
	m.recentMoods = recent

	m.err = nil
}

// toggleSelected flips completion on the goal under the cursor.
func (m *DashboardModel) toggleSelected() error {
	if m.cursor < 0 || m.cursor >= len(m.goals) {
		return nil
	}

	_, err := m.goalRepo.ToggleCompleted(m.goals[m.cursor].Key)
	return err
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
