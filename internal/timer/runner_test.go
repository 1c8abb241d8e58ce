package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gorewood/devbench/internal/interval"
)

func shortSettings() interval.Settings {
	return interval.Settings{
		Work:              3 * time.Second,
		ShortBreak:        2 * time.Second,
		LongBreak:         4 * time.Second,
		LongBreakInterval: 2,
		AutoStartBreaks:   true,
	}
}

type recorder struct {
	mu      sync.Mutex
	effects []interval.Effect
}

func (r *recorder) HandleEffect(effect interval.Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, effect)
}

func (r *recorder) all() []interval.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]interval.Effect(nil), r.effects...)
}

func TestRunner_Commands(t *testing.T) {
	r := New(shortSettings(), Config{})

	snap := r.Snapshot()
	if snap.Phase != interval.PhaseIdle || snap.Running || snap.Action() != "Start" {
		t.Fatalf("initial snapshot = %+v", snap)
	}
	if snap.Session == "" || snap.Session != r.Session() {
		t.Errorf("Session = %q, snapshot session = %q", r.Session(), snap.Session)
	}

	snap = r.Start()
	if snap.Phase != interval.PhaseWorking || !snap.Running || snap.Remaining != 3 {
		t.Fatalf("after Start = %+v", snap)
	}
	if snap.Action() != "Pause" {
		t.Errorf("Action() = %q, want Pause", snap.Action())
	}
	if snap.Title != "00:03 - Working | devbench" {
		t.Errorf("Title = %q", snap.Title)
	}

	r.Tick()
	snap = r.Toggle()
	if snap.Running || snap.Remaining != 2 || snap.Action() != "Resume" {
		t.Errorf("after Toggle = %+v, action %q", snap, snap.Action())
	}
	if snap = r.Toggle(); !snap.Running {
		t.Error("second Toggle should resume")
	}

	snap = r.Reset()
	if snap.Running || snap.Remaining != 3 || !snap.Fresh {
		t.Errorf("after Reset = %+v", snap)
	}

	snap = r.Skip()
	if snap.Phase != interval.PhaseShortBreak || snap.Running || snap.CompletedWorkPhases != 1 {
		t.Errorf("after Skip = %+v", snap)
	}

	if snap = r.Pause(); snap.Running {
		t.Error("Pause left timer running")
	}
}

func TestRunner_TickDeliversEffects(t *testing.T) {
	rec := &recorder{}
	r := New(shortSettings(), Config{Effects: rec})
	r.Start()

	for range 2 {
		if snap := r.Tick(); snap.Phase != interval.PhaseWorking {
			t.Fatalf("phase changed early: %+v", snap)
		}
	}
	snap := r.Tick()
	if snap.Phase != interval.PhaseShortBreak || !snap.Running || snap.Remaining != 2 {
		t.Fatalf("after completion = %+v", snap)
	}

	got := rec.all()
	want := []interval.Effect{
		{Kind: interval.EffectPlaySound},
		{Kind: interval.EffectShowNotification, Phase: interval.PhaseWorking},
	}
	if len(got) != len(want) {
		t.Fatalf("effects = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("effects[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRunner_TickWhilePausedIsSilent(t *testing.T) {
	r := New(shortSettings(), Config{})
	events := r.Subscribe(4)

	snap := r.Tick()
	if snap.Phase != interval.PhaseIdle {
		t.Errorf("Tick on idle changed phase: %+v", snap)
	}
	select {
	case ev := <-events:
		t.Errorf("unexpected event %+v", ev)
	default:
	}
}

func TestRunner_UpdateSettings(t *testing.T) {
	r := New(shortSettings(), Config{})
	r.Start()
	r.Pause()

	work := 10 * time.Second
	snap, err := r.UpdateSettings(interval.SettingsPatch{Work: &work})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if snap.Remaining != 10 || snap.Settings.Work != work {
		t.Errorf("after update = %+v", snap)
	}

	zero := 0
	if _, err := r.UpdateSettings(interval.SettingsPatch{LongBreakInterval: &zero}); err == nil {
		t.Fatal("UpdateSettings(interval 0) error = nil, want error")
	}
	if got := r.Settings().LongBreakInterval; got != 2 {
		t.Errorf("invalid patch was applied: interval = %d", got)
	}
}

func TestRunner_Events(t *testing.T) {
	r := New(shortSettings(), Config{})
	events := r.Subscribe(8)

	r.Start()
	r.Tick()
	r.Tick()
	r.Tick()

	want := []EventKind{EventState, EventTick, EventTick, EventComplete}
	for i, kind := range want {
		ev := <-events
		if ev.Kind != kind {
			t.Errorf("event %d kind = %q, want %q", i, ev.Kind, kind)
		}
		if kind == EventComplete && len(ev.Effects) != 2 {
			t.Errorf("complete event effects = %+v", ev.Effects)
		}
	}
}

func TestRunner_SlowSubscriberDoesNotBlock(t *testing.T) {
	r := New(shortSettings(), Config{})
	_ = r.Subscribe(1)

	done := make(chan struct{})
	go func() {
		r.Start()
		r.Pause()
		r.Start()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("commands blocked on a full subscriber")
	}
}

func TestRunner_Run(t *testing.T) {
	r := New(shortSettings(), Config{TickInterval: time.Millisecond})
	events := r.Subscribe(64)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()

	r.Start()
	deadline := time.After(5 * time.Second)
	for completed := false; !completed; {
		select {
		case ev := <-events:
			completed = ev.Kind == EventComplete
		case <-deadline:
			t.Fatal("no completion event before deadline")
		}
	}

	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	for range events {
	}
	if _, ok := <-r.Subscribe(1); ok {
		t.Error("Subscribe after Run returned an open channel")
	}
}
