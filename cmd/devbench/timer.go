package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gorewood/devbench/internal/alert"
	"github.com/gorewood/devbench/internal/config"
	"github.com/gorewood/devbench/internal/interval"
	"github.com/gorewood/devbench/internal/output"
	"github.com/gorewood/devbench/internal/timer"
	"github.com/gorewood/devbench/internal/tui"
)

// timerFlags holds the flags of the timer command.
type timerFlags struct {
	work       float64
	shortBreak float64
	longBreak  float64
	interval   int
	autoBreaks bool
	autoWork   bool
	noSound    bool
	noNotify   bool
	noTUI      bool
	tick       time.Duration
}

// newTimerCmd creates the timer command.
func newTimerCmd() *cobra.Command {
	var flags timerFlags
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a work/break interval timer",
		Long: `Run a work/break interval timer. The first work phase starts immediately.

Every long-break-interval work phases the break is a long one. When a phase
ends the terminal bell rings and a desktop notification is shown.

In a terminal the timer is full-screen:
  space  start/pause    r  reset phase    s  skip phase    q  quit

Otherwise (or with --no-tui) it prints phase changes until interrupted.

Examples:
  devbench timer
  devbench timer --work 50 --break 10 --long-break 30 --interval 2
  devbench timer --no-tui --no-sound > timer.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimer(cmd, flags)
		},
	}
	cmd.Flags().Float64VarP(&flags.work, "work", "w", 0, "Work phase in minutes (overrides settings)")
	cmd.Flags().Float64VarP(&flags.shortBreak, "break", "b", 0, "Short break in minutes")
	cmd.Flags().Float64VarP(&flags.longBreak, "long-break", "l", 0, "Long break in minutes")
	cmd.Flags().IntVarP(&flags.interval, "interval", "i", 0, "Work phases per long break")
	cmd.Flags().BoolVar(&flags.autoBreaks, "auto-breaks", true, "Start breaks automatically")
	cmd.Flags().BoolVar(&flags.autoWork, "auto-work", false, "Start work phases automatically after a break")
	cmd.Flags().BoolVar(&flags.noSound, "no-sound", false, "Do not ring the terminal bell")
	cmd.Flags().BoolVar(&flags.noNotify, "no-notify", false, "Do not show desktop notifications")
	cmd.Flags().BoolVar(&flags.noTUI, "no-tui", false, "Print phase changes instead of the full-screen timer")
	cmd.Flags().DurationVar(&flags.tick, "tick", time.Second, "Wall time per timer second")
	_ = cmd.Flags().MarkHidden("tick")
	return cmd
}

// runTimer executes the timer command.
func runTimer(cmd *cobra.Command, flags timerFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	settings := flags.apply(cmd, cfg.Interval())
	if err := settings.Validate(); err != nil {
		err = output.NewUserErrorWithCause("invalid timer settings", err)
		printer.Error(err)
		return err
	}

	interactive := !flags.noTUI && !printer.IsJSON() && output.IsTTY(cmd.InOrStdin()) && output.IsTTY(cmd.OutOrStdout())
	var console io.Writer
	if !interactive {
		console = cmd.ErrOrStderr()
	}
	logger, closer, err := newLogger(cmd, cfg, console)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer func() { _ = closer.Close() }()

	effects := alert.Multi{alert.Log{Logger: logger}}
	if volume := cfg.SoundVolume(); volume > 0 && !flags.noSound {
		effects = append(effects, alert.Bell{W: cmd.ErrOrStderr(), Volume: volume})
	}
	if cfg.DesktopEnabled() && !flags.noNotify {
		effects = append(effects, alert.NewDesktop(logger))
	}

	runner := timer.New(settings, timer.Config{
		TickInterval: flags.tick,
		Effects:      effects,
		Logger:       logger,
	})
	events := runner.Subscribe(16)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	logger.Info("timer started", "session", runner.Session(), "work", settings.Work,
		"short_break", settings.ShortBreak, "long_break", settings.LongBreak, "interactive", interactive)
	runner.Start()

	if interactive {
		_, err = tea.NewProgram(tui.New(runner, events), tea.WithAltScreen()).Run()
		cancel()
		<-done
		if err != nil {
			return output.NewSystemErrorWithCause("terminal screen failed", err)
		}
		return nil
	}

	var titles io.Writer
	if output.IsTTY(cmd.OutOrStdout()) {
		titles = cmd.OutOrStdout()
	}
	watchTimer(printer, events, titles)
	cancel()
	return <-done
}

// apply overrides settings with the flags the user set.
func (f timerFlags) apply(cmd *cobra.Command, settings interval.Settings) interval.Settings {
	changed := cmd.Flags().Changed
	if changed("work") {
		settings.Work = config.Minutes(f.work)
	}
	if changed("break") {
		settings.ShortBreak = config.Minutes(f.shortBreak)
	}
	if changed("long-break") {
		settings.LongBreak = config.Minutes(f.longBreak)
	}
	if changed("interval") {
		settings.LongBreakInterval = f.interval
	}
	if changed("auto-breaks") {
		settings.AutoStartBreaks = f.autoBreaks
	}
	if changed("auto-work") {
		settings.AutoStartPomodoros = f.autoWork
	}
	return settings
}

// watchTimer prints phase and run-state changes until the event stream
// closes. A non-nil titles writer gets a window title per event.
func watchTimer(printer *output.Printer, events <-chan timer.Event, titles io.Writer) {
	var last timer.Snapshot
	first := true
	for ev := range events {
		snap := ev.Snapshot
		if titles != nil {
			_ = alert.WriteTitle(titles, snap.Title)
		}
		if ev.Kind == timer.EventTick {
			continue
		}
		if !first && ev.Kind == timer.EventState && snap.Phase == last.Phase && snap.Running == last.Running &&
			snap.Remaining == last.Remaining {
			continue
		}
		first = false
		last = snap

		if printer.IsJSON() {
			_ = printer.WriteJSON(map[string]any{"event": ev.Kind, "at": ev.At.Format(time.RFC3339), "timer": snap})
			continue
		}
		printTimerEvent(printer, ev)
	}
}

func printTimerEvent(printer *output.Printer, ev timer.Event) {
	snap := ev.Snapshot
	styles := printer.Styles()
	state := "running"
	if !snap.Running {
		state = "paused"
	}
	stamp := styles.Muted.Render(ev.At.Format(time.TimeOnly))

	if ev.Kind == timer.EventComplete {
		for _, effect := range ev.Effects {
			if msg := interval.NotificationMessage(effect.Phase); effect.Kind == interval.EffectShowNotification && msg != "" {
				printer.Println(stamp, styles.Success.Render(msg))
			}
		}
	}
	printer.Println(stamp, styles.Bold.Render(snap.Label), snap.Clock, styles.Muted.Render(
		fmt.Sprintf("%s · %d completed", state, snap.CompletedWorkPhases)))
}
