package interval

import "fmt"

// State is the queryable machine state.
type State struct {
	Phase               Phase `json:"phase"`
	Remaining           int   `json:"remaining"`
	Running             bool  `json:"running"`
	CompletedWorkPhases int   `json:"completed_work_phases"`
}

// Machine is the interval timer state machine. It counts down in one-second
// ticks delivered by the caller and cycles Working -> break -> Working
// indefinitely.
//
// Machine does no locking; callers must serialize every method call.
type Machine struct {
	settings Settings
	state    State
	effects  EffectHandler
}

// New creates a Machine in the Idle phase. effects may be nil, in which case
// effects are only returned from Tick.
func New(settings Settings, effects EffectHandler) *Machine {
	return &Machine{
		settings: settings,
		state:    State{Phase: PhaseIdle},
		effects:  effects,
	}
}

// SetEffectHandler replaces the effect handler.
func (m *Machine) SetEffectHandler(effects EffectHandler) {
	m.effects = effects
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Settings returns the current settings.
func (m *Machine) Settings() Settings {
	return m.settings
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.state.Phase
}

// Running reports whether ticks advance the countdown.
func (m *Machine) Running() bool {
	return m.state.Running
}

// Start begins counting. From Idle it enters Working with a full work
// duration; otherwise it resumes the current phase.
func (m *Machine) Start() {
	if m.state.Phase == PhaseIdle {
		m.enter(PhaseWorking)
	}
	m.state.Running = true
}

// Pause stops counting. Pausing twice is the same as pausing once.
func (m *Machine) Pause() {
	m.state.Running = false
}

// Reset stops counting and refills the current phase's duration. Phase and
// the completed-work counter are unchanged.
func (m *Machine) Reset() {
	m.state.Running = false
	m.state.Remaining = durationOf(m.state.Phase, m.settings)
}

// Skip advances to the next phase immediately, as if the current one had
// completed, but without effects. The machine is always left paused; skip
// never honors the auto-start flags.
func (m *Machine) Skip() {
	m.advance()
	m.state.Running = false
}

// Tick processes one elapsed second. It is a no-op while paused. When the
// countdown reaches zero, the phase completes within the same call: the
// PlaySound and ShowNotification effects are delivered in that order, the
// phase advances and the auto-start policy is applied. The emitted effects
// are also returned.
func (m *Machine) Tick() []Effect {
	if !m.state.Running {
		return nil
	}
	if m.state.Remaining > 0 {
		m.state.Remaining--
	}
	if m.state.Remaining > 0 {
		return nil
	}

	completed := m.state.Phase
	batch := []Effect{
		{Kind: EffectPlaySound},
		{Kind: EffectShowNotification, Phase: completed},
	}
	if m.effects != nil {
		for _, effect := range batch {
			m.effects.HandleEffect(effect)
		}
	}

	m.advance()
	m.applyAutoStart()
	return batch
}

// UpdateSettings merges patch into the settings. When the machine is paused
// and the patch sets the current phase's duration, the countdown is resynced
// to the new duration at once; a running countdown keeps going and the new
// value applies from the next phase entry.
func (m *Machine) UpdateSettings(patch SettingsPatch) {
	m.settings = patch.Apply(m.settings)
	if !m.state.Running && patch.touches(m.state.Phase) {
		m.state.Remaining = durationOf(m.state.Phase, m.settings)
	}
}

// advance moves to the phase that follows the current one.
func (m *Machine) advance() {
	if m.state.Phase != PhaseWorking {
		m.enter(PhaseWorking)
		return
	}
	m.state.CompletedWorkPhases++
	if m.settings.LongBreakInterval > 0 && m.state.CompletedWorkPhases%m.settings.LongBreakInterval == 0 {
		m.enter(PhaseLongBreak)
		return
	}
	m.enter(PhaseShortBreak)
}

func (m *Machine) enter(phase Phase) {
	m.state.Phase = phase
	m.state.Remaining = durationOf(phase, m.settings)
}

// applyAutoStart decides whether the phase just entered starts on its own.
func (m *Machine) applyAutoStart() {
	switch {
	case m.state.Phase == PhaseWorking:
		m.state.Running = m.settings.AutoStartPomodoros
	case m.state.Phase.IsBreak():
		m.state.Running = m.settings.AutoStartBreaks
	default:
		m.state.Running = false
	}
}

// Duration returns the configured length of the current phase in seconds.
func (m *Machine) Duration() int {
	return durationOf(m.state.Phase, m.settings)
}

// ProgressPercent returns how much of the current phase has elapsed, from 0
// to 100. Idle reports 0.
func (m *Machine) ProgressPercent() float64 {
	if m.state.Phase == PhaseIdle {
		return 0
	}
	total := m.Duration()
	if total <= 0 {
		return 100
	}
	pct := 100 * (1 - float64(m.state.Remaining)/float64(total))
	// A running countdown may outlast a shortened duration.
	return min(max(pct, 0), 100)
}

// Fresh reports whether the current phase has not started counting yet, so
// a start control should read "Start" rather than "Resume".
func (m *Machine) Fresh() bool {
	return m.state.Remaining == m.Duration()
}

// DisplayLabel returns the phase name shown to the user. The Working label
// carries the position within the current long-break cycle.
func (m *Machine) DisplayLabel() string {
	if m.state.Phase != PhaseWorking {
		return m.state.Phase.String()
	}
	interval := m.settings.LongBreakInterval
	if interval < 1 {
		interval = 1
	}
	return fmt.Sprintf("Working (%d/%d)", m.state.CompletedWorkPhases%interval+1, interval)
}

// Clock returns the remaining time formatted as MM:SS.
func (m *Machine) Clock() string {
	return FormatClock(m.state.Remaining)
}

// Title returns a window title of the form "MM:SS - Label | app".
func (m *Machine) Title(app string) string {
	return fmt.Sprintf("%s - %s | %s", m.Clock(), m.state.Phase, app)
}

// FormatClock formats seconds as MM:SS. Minutes are not capped at 59.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
