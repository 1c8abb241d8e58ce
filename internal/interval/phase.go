package interval

import (
	"fmt"
	"time"
)

// Phase is one of the four mutually exclusive timer modes.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseWorking    Phase = "working"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// IsBreak reports whether the phase is a short or long break.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// String returns the human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Ready"
	case PhaseWorking:
		return "Working"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return string(p)
	}
}

// Settings configures phase durations and auto-start behavior.
// Durations must be positive and LongBreakInterval at least 1; the machine
// does not check this.
type Settings struct {
	Work               time.Duration
	ShortBreak         time.Duration
	LongBreak          time.Duration
	LongBreakInterval  int
	AutoStartBreaks    bool
	AutoStartPomodoros bool
}

// DefaultSettings returns the classic 25/5/15 schedule with a long break
// every fourth work phase.
func DefaultSettings() Settings {
	return Settings{
		Work:               25 * time.Minute,
		ShortBreak:         5 * time.Minute,
		LongBreak:          15 * time.Minute,
		LongBreakInterval:  4,
		AutoStartBreaks:    true,
		AutoStartPomodoros: false,
	}
}

// Validate reports the first setting that violates the machine's preconditions.
func (s Settings) Validate() error {
	switch {
	case s.Work < time.Second:
		return fmt.Errorf("work duration must be at least 1s, got %s", s.Work)
	case s.ShortBreak < time.Second:
		return fmt.Errorf("short break duration must be at least 1s, got %s", s.ShortBreak)
	case s.LongBreak < time.Second:
		return fmt.Errorf("long break duration must be at least 1s, got %s", s.LongBreak)
	case s.LongBreakInterval < 1:
		return fmt.Errorf("long break interval must be at least 1, got %d", s.LongBreakInterval)
	}
	return nil
}

// SettingsPatch holds the fields to merge in UpdateSettings. Nil fields are
// left unchanged.
type SettingsPatch struct {
	Work               *time.Duration
	ShortBreak         *time.Duration
	LongBreak          *time.Duration
	LongBreakInterval  *int
	AutoStartBreaks    *bool
	AutoStartPomodoros *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Work == nil && p.ShortBreak == nil && p.LongBreak == nil &&
		p.LongBreakInterval == nil && p.AutoStartBreaks == nil && p.AutoStartPomodoros == nil
}

// Apply returns s with the patch merged in.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Work != nil {
		s.Work = *p.Work
	}
	if p.ShortBreak != nil {
		s.ShortBreak = *p.ShortBreak
	}
	if p.LongBreak != nil {
		s.LongBreak = *p.LongBreak
	}
	if p.LongBreakInterval != nil {
		s.LongBreakInterval = *p.LongBreakInterval
	}
	if p.AutoStartBreaks != nil {
		s.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.AutoStartPomodoros != nil {
		s.AutoStartPomodoros = *p.AutoStartPomodoros
	}
	return s
}

// touches reports whether the patch sets the duration that governs phase.
func (p SettingsPatch) touches(phase Phase) bool {
	switch phase {
	case PhaseWorking:
		return p.Work != nil
	case PhaseShortBreak:
		return p.ShortBreak != nil
	case PhaseLongBreak:
		return p.LongBreak != nil
	default:
		return false
	}
}

// durationOf returns the configured length of phase in whole seconds.
// Idle has no duration.
func durationOf(phase Phase, s Settings) int {
	var d time.Duration
	switch phase {
	case PhaseWorking:
		d = s.Work
	case PhaseShortBreak:
		d = s.ShortBreak
	case PhaseLongBreak:
		d = s.LongBreak
	default:
		return 0
	}
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}
