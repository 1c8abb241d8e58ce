package timer

import (
	"time"

	"github.com/gorewood/devbench/internal/interval"
)

// EventKind defines the type of runner event.
type EventKind string

const (
	// EventState follows a user command or a settings change.
	EventState EventKind = "state"
	// EventTick follows a tick that did not finish the phase.
	EventTick EventKind = "tick"
	// EventComplete follows a tick that finished the phase.
	EventComplete EventKind = "complete"
)

// Event is a runner update for observers.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
	// Effects is set for EventComplete.
	Effects []interval.Effect
	At      time.Time
}

// Snapshot is a consistent view of the timer at one instant.
type Snapshot struct {
	Session             string         `json:"session"`
	Phase               interval.Phase `json:"phase"`
	Label               string         `json:"label"`
	Remaining           int            `json:"remaining"`
	Duration            int            `json:"duration"`
	Clock               string         `json:"clock"`
	Title               string         `json:"title"`
	Running             bool           `json:"running"`
	CompletedWorkPhases int            `json:"completed_work_phases"`
	Progress            float64        `json:"progress"`
	Fresh               bool           `json:"fresh"`

	Settings interval.Settings `json:"-"`
}

// Action is the label of the primary control: "Start", "Resume" or "Pause".
func (s Snapshot) Action() string {
	switch {
	case s.Running:
		return "Pause"
	case s.Fresh:
		return "Start"
	default:
		return "Resume"
	}
}
