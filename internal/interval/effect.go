package interval

// EffectKind identifies a side effect requested by the machine.
type EffectKind string

const (
	EffectPlaySound        EffectKind = "play_sound"
	EffectShowNotification EffectKind = "show_notification"
)

// Effect is a side-effect request. Phase is set for notifications and names
// the phase that just completed.
type Effect struct {
	Kind  EffectKind
	Phase Phase
}

// EffectHandler executes effects on behalf of the machine. It is called
// synchronously from Tick and must not call back into the machine.
type EffectHandler interface {
	HandleEffect(effect Effect)
}

// EffectFunc adapts a function to EffectHandler.
type EffectFunc func(effect Effect)

// HandleEffect calls f(effect).
func (f EffectFunc) HandleEffect(effect Effect) {
	f(effect)
}

// NotificationTitle is the title used for phase-completion notifications.
const NotificationTitle = "Pomodoro Timer"

// NotificationMessage returns the notification body for a completed phase.
func NotificationMessage(completed Phase) string {
	switch completed {
	case PhaseWorking:
		return "Time for a break!"
	case PhaseShortBreak, PhaseLongBreak:
		return "Break is over! Time to work!"
	default:
		return ""
	}
}
