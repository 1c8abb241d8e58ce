package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gorewood/devbench/internal/interval"
)

// DefaultApp is the application name used in window titles.
const DefaultApp = "devbench"

// Config contains runtime options for a Runner.
type Config struct {
	// TickInterval is the wall-clock time per machine tick. Defaults to one
	// second; tests shorten it.
	TickInterval time.Duration
	// App is the suffix of the window title.
	App string
	// Effects receives completion effects outside the runner's lock.
	Effects interval.EffectHandler
	Logger  *slog.Logger
}

// Runner drives an interval.Machine from a ticker and serializes every
// command against it. It is safe for concurrent use.
type Runner struct {
	mu      sync.Mutex
	machine *interval.Machine
	session string
	app     string
	tick    time.Duration
	effects interval.EffectHandler
	logger  *slog.Logger
	subs    []chan Event
	closed  bool
}

// New creates a Runner in the Idle phase. Settings are not validated here;
// callers load them through config, which does.
func New(settings interval.Settings, cfg Config) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.App == "" {
		cfg.App = DefaultApp
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	session := uuid.NewString()
	return &Runner{
		machine: interval.New(settings, nil),
		session: session,
		app:     cfg.App,
		tick:    cfg.TickInterval,
		effects: cfg.Effects,
		logger:  cfg.Logger.With("session", session),
	}
}

// Session returns the runner's unique session ID.
func (r *Runner) Session() string {
	return r.session
}

// Subscribe registers an observer. Sends never block: an observer that falls
// behind misses events. The channel is closed when Run returns.
func (r *Runner) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		close(ch)
		return ch
	}
	r.subs = append(r.subs, ch)
	return ch
}

// Run ticks the machine until ctx is done, then closes every subscriber.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	defer r.close()

	r.logger.Debug("timer loop started", "tick", r.tick)
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("timer loop stopped")
			return nil
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick advances the machine by one tick. Effects from a phase completion are
// delivered to the configured handler after the lock is released.
func (r *Runner) Tick() Snapshot {
	r.mu.Lock()
	if !r.machine.Running() {
		snap := r.snapshotLocked()
		r.mu.Unlock()
		return snap
	}
	before := r.machine.Phase()
	effects := r.machine.Tick()
	snap := r.snapshotLocked()
	if len(effects) == 0 {
		r.emitLocked(Event{Kind: EventTick, Snapshot: snap, At: time.Now()})
		r.mu.Unlock()
		return snap
	}
	r.emitLocked(Event{Kind: EventComplete, Snapshot: snap, Effects: effects, At: time.Now()})
	r.mu.Unlock()

	r.logger.Info("phase complete",
		"completed", before,
		"next", snap.Phase,
		"completed_work_phases", snap.CompletedWorkPhases,
		"auto_started", snap.Running,
	)
	if r.effects != nil {
		for _, effect := range effects {
			r.effects.HandleEffect(effect)
		}
	}
	return snap
}

// Snapshot returns the current state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Settings returns the current settings.
func (r *Runner) Settings() interval.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.Settings()
}

// Start begins or resumes counting.
func (r *Runner) Start() Snapshot {
	return r.command("start", (*interval.Machine).Start)
}

// Pause stops counting.
func (r *Runner) Pause() Snapshot {
	return r.command("pause", (*interval.Machine).Pause)
}

// Toggle pauses a running timer and starts a paused one.
func (r *Runner) Toggle() Snapshot {
	return r.command("toggle", func(m *interval.Machine) {
		if m.Running() {
			m.Pause()
			return
		}
		m.Start()
	})
}

// Reset stops counting and refills the current phase.
func (r *Runner) Reset() Snapshot {
	return r.command("reset", (*interval.Machine).Reset)
}

// Skip moves to the next phase without effects and leaves the timer paused.
func (r *Runner) Skip() Snapshot {
	return r.command("skip", (*interval.Machine).Skip)
}

// UpdateSettings merges patch into the settings. The merged settings must be
// valid; otherwise nothing changes and the validation error is returned.
func (r *Runner) UpdateSettings(patch interval.SettingsPatch) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := patch.Apply(r.machine.Settings()).Validate(); err != nil {
		return r.snapshotLocked(), err
	}
	r.machine.UpdateSettings(patch)
	snap := r.snapshotLocked()
	r.logger.Debug("settings updated", "work", snap.Settings.Work, "short_break", snap.Settings.ShortBreak,
		"long_break", snap.Settings.LongBreak, "interval", snap.Settings.LongBreakInterval)
	r.emitLocked(Event{Kind: EventState, Snapshot: snap, At: time.Now()})
	return snap, nil
}

func (r *Runner) command(name string, fn func(*interval.Machine)) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.machine)
	snap := r.snapshotLocked()
	r.logger.Debug("timer command", "command", name, "phase", snap.Phase, "running", snap.Running)
	r.emitLocked(Event{Kind: EventState, Snapshot: snap, At: time.Now()})
	return snap
}

func (r *Runner) snapshotLocked() Snapshot {
	m := r.machine
	state := m.State()
	return Snapshot{
		Session:             r.session,
		Phase:               state.Phase,
		Label:               m.DisplayLabel(),
		Remaining:           state.Remaining,
		Duration:            m.Duration(),
		Clock:               m.Clock(),
		Title:               m.Title(r.app),
		Running:             state.Running,
		CompletedWorkPhases: state.CompletedWorkPhases,
		Progress:            m.ProgressPercent(),
		Fresh:               m.Fresh(),
		Settings:            m.Settings(),
	}
}

func (r *Runner) emitLocked(event Event) {
	for _, ch := range r.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (r *Runner) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for _, ch := range r.subs {
		close(ch)
	}
	r.subs = nil
}
