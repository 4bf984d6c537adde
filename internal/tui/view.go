package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/randomizedcoder/go-obs-replay-toggle/internal/supervisor"
)

// =============================================================================
// Main View Rendering
// =============================================================================

// renderStatusView renders the single-run status display.
func (m Model) renderStatusView() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderRun())

	if m.state == supervisor.StatePollingReady || m.attempts > 0 {
		sections = append(sections, m.renderReadiness())
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// Header
// =============================================================================

func (m Model) renderHeader() string {
	title := titleStyle.Render(" go-obs-replay-toggle ")
	state := GetStateLabel(m.state.String(), m.state.Failed())
	elapsed := mutedStyle.Render("elapsed " + formatDuration(m.elapsed))

	return lipgloss.JoinHorizontal(lipgloss.Left, title, " ", state, "  ", elapsed)
}

// =============================================================================
// Run Section
// =============================================================================

func (m Model) renderRun() string {
	lines := []string{
		subtitleStyle.Render("Run"),
		RenderKeyValue("Launch", m.launchCmd),
		RenderKeyValue("Probe", m.probeCmd),
		RenderKeyValue("Control", m.controlCmd),
	}

	if m.pid > 0 {
		lines = append(lines, RenderKeyValue("Target PID", fmt.Sprintf("%d", m.pid)))
	} else {
		lines = append(lines, RenderKeyValue("Target PID", dimStyle.Render("pending")))
	}

	if m.metricsAddr != "" {
		lines = append(lines, RenderKeyValue("Metrics", "http://"+m.metricsAddr+"/metrics"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// =============================================================================
// Readiness Section
// =============================================================================

func (m Model) renderReadiness() string {
	barWidth := m.width - 30
	if barWidth < 20 {
		barWidth = 20
	}

	lines := []string{
		subtitleStyle.Render("Readiness"),
		RenderProgressBar(m.PollProgress(), barWidth),
		RenderKeyValue("Probe Attempts", fmt.Sprintf("%d", m.attempts)),
	}

	if m.runStats != nil && m.runStats.LatencyMax() > 0 {
		lines = append(lines, RenderKeyValue("Probe Latency",
			fmt.Sprintf("p50 %s / p95 %s",
				formatMs(m.runStats.LatencyPercentile(0.50)),
				formatMs(m.runStats.LatencyPercentile(0.95)),
			)))
	}

	switch {
	case m.state == supervisor.StateSucceeded:
		lines = append(lines, statusOK.Render("✓ Ready, control command sent"))
	case m.state.Failed():
		lines = append(lines, statusError.Render("✗ "+m.state.String()))
	case m.state == supervisor.StateCommanding:
		lines = append(lines, statusInfo.Render("Ready, sending control command..."))
	default:
		lines = append(lines, statusInfo.Render("Waiting for the control surface..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// =============================================================================
// Footer
// =============================================================================

func (m Model) renderFooter() string {
	return footerStyle.Render("q: quit display (the run keeps going)")
}
