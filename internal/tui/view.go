package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gorewood/devbench/internal/interval"
	"github.com/gorewood/devbench/internal/timer"
)

const (
	defaultWidth = 48
	barWidth     = 32
)

var (
	colorIdle       = lipgloss.Color("245") // gray
	colorWorking    = lipgloss.Color("203") // tomato
	colorShortBreak = lipgloss.Color("114") // green
	colorLongBreak  = lipgloss.Color("75")  // blue

	clockStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	emptyBar    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func phaseColor(phase interval.Phase) lipgloss.Color {
	switch phase {
	case interval.PhaseWorking:
		return colorWorking
	case interval.PhaseShortBreak:
		return colorShortBreak
	case interval.PhaseLongBreak:
		return colorLongBreak
	default:
		return colorIdle
	}
}

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	s := m.snap
	accent := lipgloss.NewStyle().Foreground(phaseColor(s.Phase)).Bold(true)

	lines := []string{
		"",
		accent.Render(center(s.Label, width)),
		"",
		clockStyle.Render(center(s.Clock, width)),
		"",
		strings.Repeat(" ", pad(barWidth, width)) + progressBar(s.Progress, barWidth, accent),
		"",
		statusLine(s, width),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, m.help.View(m.keys)),
	}
	return strings.Join(lines, "\n")
}

func statusLine(s timer.Snapshot, width int) string {
	state, style := "running", mutedStyle
	switch {
	case !s.Running && s.Fresh:
		state = "ready"
	case !s.Running:
		state, style = "paused", pausedStyle
	}
	text := fmt.Sprintf("%s · %d completed · space to %s", state, s.CompletedWorkPhases, strings.ToLower(s.Action()))
	return style.Render(center(text, width))
}

// progressBar renders percent (0-100) as a bar of the given cell width.
func progressBar(percent float64, width int, fill lipgloss.Style) string {
	filled := int(percent / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return fill.Render(strings.Repeat("█", filled)) + emptyBar.Render(strings.Repeat("░", width-filled))
}

// center pads plain text s on the left so it sits in the middle of width
// cells.
func center(s string, width int) string {
	return strings.Repeat(" ", pad(runewidth.StringWidth(s), width)) + s
}

func pad(content, width int) int {
	return max((width-content)/2, 0)
}
