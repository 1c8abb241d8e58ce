package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gorewood/devbench/internal/timer"
)

// Controller is the part of timer.Runner the screen drives.
type Controller interface {
	Snapshot() timer.Snapshot
	Toggle() timer.Snapshot
	Reset() timer.Snapshot
	Skip() timer.Snapshot
}

type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// eventMsg carries a runner event into the update loop.
type eventMsg timer.Event

// closedMsg reports that the runner stopped and closed its event stream.
type closedMsg struct{}

// Model is the interactive timer screen.
type Model struct {
	timer  Controller
	events <-chan timer.Event
	snap   timer.Snapshot
	keys   keyMap
	help   help.Model
	width  int
}

// New creates the screen. events should come from the same runner's
// Subscribe.
func New(ctrl Controller, events <-chan timer.Event) Model {
	return Model{
		timer:  ctrl,
		events: events,
		snap:   ctrl.Snapshot(),
		keys:   defaultKeys(),
		help:   help.New(),
	}
}

// Snapshot returns the state the screen last rendered.
func (m Model) Snapshot() timer.Snapshot {
	return m.snap
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tea.SetWindowTitle(m.snap.Title))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.snap = m.timer.Toggle()
		case key.Matches(msg, m.keys.Reset):
			m.snap = m.timer.Reset()
		case key.Matches(msg, m.keys.Skip):
			m.snap = m.timer.Skip()
		default:
			return m, nil
		}
		return m, tea.SetWindowTitle(m.snap.Title)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.snap = msg.Snapshot
		return m, tea.Batch(waitForEvent(m.events), tea.SetWindowTitle(m.snap.Title))

	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

// waitForEvent blocks until the runner publishes, then hands the event to
// Update.
func waitForEvent(events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}
