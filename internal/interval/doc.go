// Package interval implements the focus/break interval timer as a headless
// state machine.
//
// The machine owns no clock. A caller delivers one Tick per elapsed second
// and issues user commands (Start, Pause, Reset, Skip, UpdateSettings):
//
//	m := interval.New(interval.DefaultSettings(), interval.EffectFunc(func(e interval.Effect) {
//		// play a sound, show a notification
//	}))
//	m.Start()
//	for range ticker.C {
//		m.Tick()
//	}
//
// # Phases
//
// The machine starts Idle and cycles Working -> ShortBreak|LongBreak ->
// Working without a terminal state. Every LongBreakInterval-th completed work
// phase is followed by a long break instead of a short one.
//
// # Effects
//
// When a countdown reaches zero inside Tick, the machine asks its
// EffectHandler to PlaySound and then ShowNotification for the phase that
// just completed, before Tick returns. Skip advances without effects.
//
// # Concurrency
//
// Machine is not safe for concurrent use. See package timer for a runner that
// owns the ticker and serializes access.
package interval
