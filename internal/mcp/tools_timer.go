package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/devbench/internal/interval"
	"github.com/gorewood/devbench/internal/timer"
)

var errNoTimer = errors.New("timer is not running in this server")

// TimerStatus is the timer state returned by every timer tool.
type TimerStatus struct {
	Phase               string  `json:"phase"                 jsonschema:"idle, working, short_break or long_break"`
	Label               string  `json:"label"                 jsonschema:"display label, e.g. Working (2/4)"`
	Clock               string  `json:"clock"                 jsonschema:"remaining time as MM:SS"`
	Remaining           int     `json:"remaining"             jsonschema:"remaining seconds"`
	Duration            int     `json:"duration"              jsonschema:"phase length in seconds"`
	Running             bool    `json:"running"               jsonschema:"whether the countdown is active"`
	CompletedWorkPhases int     `json:"completed_work_phases" jsonschema:"work phases finished this session"`
	Progress            float64 `json:"progress"              jsonschema:"percent of the phase elapsed"`
	Action              string  `json:"action"                jsonschema:"what toggling would do: Start, Pause or Resume"`
	Settings            Minutes `json:"settings"              jsonschema:"settings in effect"`
}

// Minutes is the settings view used by the timer tools.
type Minutes struct {
	WorkMinutes        float64 `json:"work_minutes"`
	ShortBreakMinutes  float64 `json:"short_break_minutes"`
	LongBreakMinutes   float64 `json:"long_break_minutes"`
	LongBreakInterval  int     `json:"long_break_interval"`
	AutoStartBreaks    bool    `json:"auto_start_breaks"`
	AutoStartPomodoros bool    `json:"auto_start_pomodoros"`
}

func toStatus(s timer.Snapshot) TimerStatus {
	return TimerStatus{
		Phase:               string(s.Phase),
		Label:               s.Label,
		Clock:               s.Clock,
		Remaining:           s.Remaining,
		Duration:            s.Duration,
		Running:             s.Running,
		CompletedWorkPhases: s.CompletedWorkPhases,
		Progress:            s.Progress,
		Action:              s.Action(),
		Settings: Minutes{
			WorkMinutes:        s.Settings.Work.Minutes(),
			ShortBreakMinutes:  s.Settings.ShortBreak.Minutes(),
			LongBreakMinutes:   s.Settings.LongBreak.Minutes(),
			LongBreakInterval:  s.Settings.LongBreakInterval,
			AutoStartBreaks:    s.Settings.AutoStartBreaks,
			AutoStartPomodoros: s.Settings.AutoStartPomodoros,
		},
	}
}

// --- timer_status tool ---

// TimerStatusInput is the input for the timer_status tool (no parameters needed).
type TimerStatusInput struct{}

func handleTimerStatus(runner *timer.Runner) mcp.ToolHandlerFor[TimerStatusInput, TimerStatus] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ TimerStatusInput) (*mcp.CallToolResult, TimerStatus, error) {
		if runner == nil {
			return nil, TimerStatus{}, errNoTimer
		}
		return nil, toStatus(runner.Snapshot()), nil
	}
}

// --- timer_control tool ---

// TimerControlInput is the input for the timer_control tool.
type TimerControlInput struct {
	Action string `json:"action" jsonschema:"start, pause, toggle, reset or skip"`
}

func handleTimerControl(runner *timer.Runner) mcp.ToolHandlerFor[TimerControlInput, TimerStatus] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in TimerControlInput) (*mcp.CallToolResult, TimerStatus, error) {
		if runner == nil {
			return nil, TimerStatus{}, errNoTimer
		}
		var snap timer.Snapshot
		switch strings.ToLower(strings.TrimSpace(in.Action)) {
		case "start":
			snap = runner.Start()
		case "pause":
			snap = runner.Pause()
		case "toggle":
			snap = runner.Toggle()
		case "reset":
			snap = runner.Reset()
		case "skip":
			snap = runner.Skip()
		default:
			return nil, TimerStatus{}, fmt.Errorf("unknown action %q (start|pause|toggle|reset|skip)", in.Action)
		}
		return nil, toStatus(snap), nil
	}
}

// --- timer_settings tool ---

// TimerSettingsInput is the input for the timer_settings tool.
type TimerSettingsInput struct {
	WorkMinutes        *float64 `json:"work_minutes,omitempty"         jsonschema:"work phase length in minutes"`
	ShortBreakMinutes  *float64 `json:"short_break_minutes,omitempty"  jsonschema:"short break length in minutes"`
	LongBreakMinutes   *float64 `json:"long_break_minutes,omitempty"   jsonschema:"long break length in minutes"`
	LongBreakInterval  *int     `json:"long_break_interval,omitempty"  jsonschema:"work phases per long break"`
	AutoStartBreaks    *bool    `json:"auto_start_breaks,omitempty"    jsonschema:"start breaks automatically"`
	AutoStartPomodoros *bool    `json:"auto_start_pomodoros,omitempty" jsonschema:"start work phases automatically after a break"`
}

// Patch converts the minute-based input into a settings patch.
func (in TimerSettingsInput) Patch() interval.SettingsPatch {
	patch := interval.SettingsPatch{
		LongBreakInterval:  in.LongBreakInterval,
		AutoStartBreaks:    in.AutoStartBreaks,
		AutoStartPomodoros: in.AutoStartPomodoros,
	}
	patch.Work = minutesPtr(in.WorkMinutes)
	patch.ShortBreak = minutesPtr(in.ShortBreakMinutes)
	patch.LongBreak = minutesPtr(in.LongBreakMinutes)
	return patch
}

func handleTimerSettings(runner *timer.Runner) mcp.ToolHandlerFor[TimerSettingsInput, TimerStatus] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in TimerSettingsInput) (*mcp.CallToolResult, TimerStatus, error) {
		if runner == nil {
			return nil, TimerStatus{}, errNoTimer
		}
		patch := in.Patch()
		if patch.IsEmpty() {
			return nil, TimerStatus{}, errors.New("no settings given")
		}
		snap, err := runner.UpdateSettings(patch)
		if err != nil {
			return nil, TimerStatus{}, err
		}
		return nil, toStatus(snap), nil
	}
}
