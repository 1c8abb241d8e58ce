package alert

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gorewood/devbench/internal/interval"
)

var (
	sound  = interval.Effect{Kind: interval.EffectPlaySound}
	notify = interval.Effect{Kind: interval.EffectShowNotification, Phase: interval.PhaseWorking}
)

func TestBell(t *testing.T) {
	tests := []struct {
		name   string
		volume int
		effect interval.Effect
		want   string
	}{
		{"rings on sound", 80, sound, "\a"},
		{"muted", 0, sound, ""},
		{"ignores notifications", 80, notify, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Bell{W: &buf, Volume: tt.volume}.HandleEffect(tt.effect)
			if buf.String() != tt.want {
				t.Errorf("wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Log{Logger: logger}.HandleEffect(notify)
	if !strings.Contains(buf.String(), "kind=show_notification") || !strings.Contains(buf.String(), "phase=working") {
		t.Errorf("log output = %q", buf.String())
	}
	Log{}.HandleEffect(notify)
}

func TestMulti(t *testing.T) {
	var order []string
	first := interval.EffectFunc(func(interval.Effect) { order = append(order, "first") })
	second := interval.EffectFunc(func(interval.Effect) { order = append(order, "second") })

	Multi{first, nil, second}.HandleEffect(sound)
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("order = %v", order)
	}
}

func TestWriteTitle(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTitle(&buf, "24:59 - Working\a | devbench"); err != nil {
		t.Fatalf("WriteTitle() error = %v", err)
	}
	if want := "\033]0;24:59 - Working | devbench\007"; buf.String() != want {
		t.Errorf("WriteTitle() wrote %q, want %q", buf.String(), want)
	}
}

func TestDesktop(t *testing.T) {
	var calls [][]string
	d := &Desktop{
		logger: slog.New(slog.DiscardHandler),
		goos:   "linux",
		run: func(name string, args ...string) error {
			calls = append(calls, append([]string{name}, args...))
			return nil
		},
	}

	d.HandleEffect(sound)
	d.HandleEffect(interval.Effect{Kind: interval.EffectShowNotification, Phase: interval.PhaseIdle})
	if len(calls) != 0 {
		t.Fatalf("unexpected notifier calls: %v", calls)
	}

	d.HandleEffect(notify)
	if len(calls) != 1 {
		t.Fatalf("calls = %v, want one", calls)
	}
	want := []string{"notify-send", "--app-name=devbench", "Pomodoro Timer", "Time for a break!"}
	if strings.Join(calls[0], "|") != strings.Join(want, "|") {
		t.Errorf("call = %q, want %q", calls[0], want)
	}
}

func TestDesktop_WarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	d := &Desktop{
		logger: slog.New(slog.NewTextHandler(&buf, nil)),
		goos:   "linux",
		run:    func(string, ...string) error { return errors.New("exec: not found") },
	}
	for range 3 {
		d.HandleEffect(notify)
	}
	if n := strings.Count(buf.String(), "desktop notifications disabled"); n != 1 {
		t.Errorf("warning logged %d times, want 1:\n%s", n, buf.String())
	}
}

func TestNotifierCommand(t *testing.T) {
	name, args, err := notifierCommand("darwin", `Say "hi"`, "Break is over! Time to work!")
	if err != nil || name != "osascript" {
		t.Fatalf("darwin: %s %v %v", name, args, err)
	}
	if want := `display notification "Break is over! Time to work!" with title "Say \"hi\""`; args[1] != want {
		t.Errorf("darwin script = %s, want %s", args[1], want)
	}

	name, args, err = notifierCommand("windows", "it's", "done")
	if err != nil || name != "powershell" {
		t.Fatalf("windows: %s %v", name, err)
	}
	if !strings.Contains(args[len(args)-1], "'it''s', 'done'") {
		t.Errorf("windows script = %s", args[len(args)-1])
	}

	if _, _, err := notifierCommand("plan9", "t", "m"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("plan9 error = %v, want ErrUnsupported", err)
	}
}
