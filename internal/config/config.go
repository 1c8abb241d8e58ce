package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/devbench/internal/interval"
	"github.com/gorewood/devbench/internal/rsync"
)

// Config is the contents of settings.yaml.
type Config struct {
	Timer  TimerConfig `yaml:"timer" json:"timer"`
	Alerts AlertConfig `yaml:"alerts" json:"alerts"`
	Rsync  RsyncConfig `yaml:"rsync" json:"rsync"`
	Log    LogConfig   `yaml:"log" json:"log"`
}

// TimerConfig holds interval durations in minutes.
type TimerConfig struct {
	WorkMinutes        float64 `yaml:"work_minutes" json:"work_minutes"`
	ShortBreakMinutes  float64 `yaml:"short_break_minutes" json:"short_break_minutes"`
	LongBreakMinutes   float64 `yaml:"long_break_minutes" json:"long_break_minutes"`
	LongBreakInterval  int     `yaml:"long_break_interval" json:"long_break_interval"`
	AutoStartBreaks    *bool   `yaml:"auto_start_breaks" json:"auto_start_breaks"`
	AutoStartPomodoros *bool   `yaml:"auto_start_pomodoros" json:"auto_start_pomodoros"`
}

// AlertConfig controls how phase completions are announced.
type AlertConfig struct {
	Sound   *bool `yaml:"sound" json:"sound"`
	Volume  *int  `yaml:"volume" json:"volume"`
	Desktop *bool `yaml:"desktop" json:"desktop"`
}

// RsyncConfig holds defaults for generated rsync commands.
type RsyncConfig struct {
	Options  []string `yaml:"options" json:"options"`
	Excludes []string `yaml:"excludes,omitempty" json:"excludes,omitempty"`
	Port     string   `yaml:"port" json:"port"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads the settings file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// YAML renders cfg as it would be saved.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) setDefaults() {
	t := &c.Timer
	if t.WorkMinutes == 0 {
		t.WorkMinutes = 25
	}
	if t.ShortBreakMinutes == 0 {
		t.ShortBreakMinutes = 5
	}
	if t.LongBreakMinutes == 0 {
		t.LongBreakMinutes = 15
	}
	if t.LongBreakInterval == 0 {
		t.LongBreakInterval = 4
	}
	if t.AutoStartBreaks == nil {
		t.AutoStartBreaks = boolPtr(true)
	}
	if t.AutoStartPomodoros == nil {
		t.AutoStartPomodoros = boolPtr(false)
	}

	if c.Alerts.Sound == nil {
		c.Alerts.Sound = boolPtr(true)
	}
	if c.Alerts.Volume == nil {
		volume := 80
		c.Alerts.Volume = &volume
	}
	if c.Alerts.Desktop == nil {
		c.Alerts.Desktop = boolPtr(true)
	}

	if c.Rsync.Options == nil {
		c.Rsync.Options = rsync.DefaultOptions()
	}
	if c.Rsync.Port == "" {
		c.Rsync.Port = rsync.DefaultPort
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = LogPath()
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.Interval().Validate(); err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	if v := c.Alerts.Volume; v != nil && (*v < 0 || *v > 100) {
		return fmt.Errorf("alerts: volume must be between 0 and 100, got %d", *v)
	}
	for _, opt := range c.Rsync.Options {
		if _, ok := rsync.LookupOption(opt); !ok {
			return fmt.Errorf("rsync: unknown option %q", opt)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log: invalid level %q (debug|info|warn|error)", c.Log.Level)
	}
	return nil
}

// Interval converts the timer section to machine settings.
func (c *Config) Interval() interval.Settings {
	t := c.Timer
	return interval.Settings{
		Work:               Minutes(t.WorkMinutes),
		ShortBreak:         Minutes(t.ShortBreakMinutes),
		LongBreak:          Minutes(t.LongBreakMinutes),
		LongBreakInterval:  t.LongBreakInterval,
		AutoStartBreaks:    t.AutoStartBreaks != nil && *t.AutoStartBreaks,
		AutoStartPomodoros: t.AutoStartPomodoros != nil && *t.AutoStartPomodoros,
	}
}

// SoundVolume returns the bell volume, or 0 when sound is off.
func (c *Config) SoundVolume() int {
	if c.Alerts.Sound != nil && !*c.Alerts.Sound {
		return 0
	}
	if c.Alerts.Volume == nil {
		return 0
	}
	return *c.Alerts.Volume
}

// DesktopEnabled reports whether desktop notifications are on.
func (c *Config) DesktopEnabled() bool {
	return c.Alerts.Desktop == nil || *c.Alerts.Desktop
}

// Minutes converts fractional minutes to a duration rounded to the second.
func Minutes(m float64) time.Duration {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0
	}
	return time.Duration(m * float64(time.Minute)).Round(time.Second)
}

func boolPtr(b bool) *bool { return &b }
