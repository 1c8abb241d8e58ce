package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gorewood/devbench/internal/interval"
	"github.com/gorewood/devbench/internal/timer"
)

func newTestModel(t *testing.T) (Model, *timer.Runner) {
	t.Helper()
	runner := timer.New(interval.Settings{
		Work:              90 * time.Second,
		ShortBreak:        30 * time.Second,
		LongBreak:         60 * time.Second,
		LongBreakInterval: 4,
	}, timer.Config{})
	return New(runner, runner.Subscribe(16)), runner
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_Keys(t *testing.T) {
	m, runner := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if s := m.Snapshot(); s.Phase != interval.PhaseWorking || !s.Running {
		t.Fatalf("after space = %+v", s)
	}

	runner.Tick()
	m = press(m, runes("r"))
	if s := m.Snapshot(); s.Running || s.Remaining != 90 {
		t.Errorf("after r = %+v", s)
	}

	m = press(m, runes("s"))
	if s := m.Snapshot(); s.Phase != interval.PhaseShortBreak || s.Running {
		t.Errorf("after s = %+v", s)
	}

	before := m.Snapshot()
	m = press(m, runes("x"))
	if m.Snapshot() != before {
		t.Error("unbound key changed state")
	}
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestUpdate_Events(t *testing.T) {
	m, runner := newTestModel(t)
	runner.Start()
	snap := runner.Tick()

	next, cmd := m.Update(eventMsg(timer.Event{Kind: timer.EventTick, Snapshot: snap}))
	if got := next.(Model).Snapshot(); got.Remaining != 89 {
		t.Errorf("snapshot remaining = %d, want 89", got.Remaining)
	}
	if cmd == nil {
		t.Error("event should schedule the next wait")
	}

	_, cmd = m.Update(closedMsg{})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("closed stream should quit")
	}
}

func TestWaitForEvent(t *testing.T) {
	events := make(chan timer.Event, 1)
	events <- timer.Event{Kind: timer.EventState}
	if _, ok := waitForEvent(events)().(eventMsg); !ok {
		t.Error("waitForEvent should return the event")
	}
	close(events)
	if _, ok := waitForEvent(events)().(closedMsg); !ok {
		t.Error("waitForEvent on closed channel should report closed")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"Ready", "00:00", "ready · 0 completed · space to start", "reset"} {
		if !strings.Contains(view, want) {
			t.Errorf("idle view missing %q:\n%s", want, view)
		}
	}

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	view = m.View()
	for _, want := range []string{"Working (1/4)", "01:30", "running"} {
		if !strings.Contains(view, want) {
			t.Errorf("working view missing %q:\n%s", want, view)
		}
	}

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if !strings.Contains(m.View(), "space to start") {
		t.Errorf("fresh paused view should offer start:\n%s", m.View())
	}
}

func TestProgressBar(t *testing.T) {
	plain := emptyBar.UnsetForeground()
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "░░░░"},
		{50, "██░░"},
		{100, "████"},
		{150, "████"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.percent, 4, plain); !strings.Contains(stripANSI(got), tt.want) {
			t.Errorf("progressBar(%v) = %q, want %q", tt.percent, stripANSI(got), tt.want)
		}
	}
}

func TestCenter(t *testing.T) {
	if got := center("ab", 6); got != "  ab" {
		t.Errorf("center() = %q", got)
	}
	if got := center("日本", 8); got != "  日本" {
		t.Errorf("center(wide) = %q", got)
	}
	if got := center("too long", 4); got != "too long" {
		t.Errorf("center(overflow) = %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
