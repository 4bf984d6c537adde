package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-obs-replay-toggle/internal/stats"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/supervisor"
)

// =============================================================================
// Messages
// =============================================================================

// TickMsg is sent periodically to update the display.
type TickMsg time.Time

// QuitMsg signals the TUI should exit.
type QuitMsg struct{}

// =============================================================================
// Model
// =============================================================================

// StatusSource is the supervisor surface the display polls on every tick.
type StatusSource interface {
	State() supervisor.State
	Elapsed() time.Duration
	ProbeAttempts() int
	PID() int
}

// Model represents the TUI state.
type Model struct {
	// Configuration
	launchCmd     string
	probeCmd      string
	controlCmd    string
	readyDeadline time.Duration
	metricsAddr   string

	// Polled sources
	source   StatusSource
	runStats *stats.RunStats

	// Snapshot from the last tick
	state      supervisor.State
	pid        int
	attempts   int
	elapsed    time.Duration
	lastUpdate time.Time

	// Display options
	width  int
	height int

	quitting bool
}

// Config holds TUI configuration.
type Config struct {
	LaunchCmd     string
	ProbeCmd      string
	ControlCmd    string
	ReadyDeadline time.Duration
	MetricsAddr   string
	Source        StatusSource
	RunStats      *stats.RunStats
}

// New creates a new TUI model.
func New(cfg Config) Model {
	return Model{
		launchCmd:     cfg.LaunchCmd,
		probeCmd:      cfg.ProbeCmd,
		controlCmd:    cfg.ControlCmd,
		readyDeadline: cfg.ReadyDeadline,
		metricsAddr:   cfg.MetricsAddr,
		source:        cfg.Source,
		runStats:      cfg.RunStats,
		lastUpdate:    time.Now(),
		width:         80,
		height:        24,
	}
}

// =============================================================================
// Bubble Tea Interface
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.source != nil {
			m.state = m.source.State()
			m.pid = m.source.PID()
			m.attempts = m.source.ProbeAttempts()
			m.elapsed = m.source.Elapsed()
		}
		m.lastUpdate = time.Now()
		return m, tickCmd()

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderStatusView()
}

// =============================================================================
// Commands
// =============================================================================

// tickCmd returns a command that sends a tick after 250ms.
func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// =============================================================================
// Accessors
// =============================================================================

// PollProgress returns elapsed-over-deadline progress (0.0 to 1.0) while the
// readiness loop runs.
func (m Model) PollProgress() float64 {
	if m.readyDeadline <= 0 {
		return 0
	}
	p := float64(m.elapsed) / float64(m.readyDeadline)
	if p > 1 {
		p = 1
	}
	return p
}

// =============================================================================
// Helper for external use
// =============================================================================

// SendQuit sends a quit message to the TUI.
func SendQuit(p *tea.Program) {
	if p != nil {
		p.Send(QuitMsg{})
	}
}

// =============================================================================
// Formatting Helpers (used by view.go)
// =============================================================================

// formatDuration formats a duration as MM:SS.d.
func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := d.Seconds() - float64(m*60)
	return fmt.Sprintf("%02d:%04.1f", m, s)
}

// formatMs formats a duration as milliseconds.
func formatMs(d time.Duration) string {
	ms := d.Milliseconds()
	if ms == 0 && d > 0 {
		return fmt.Sprintf("%d µs", d.Microseconds())
	}
	return fmt.Sprintf("%d ms", ms)
}
