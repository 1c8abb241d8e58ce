package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/devbench/internal/interval"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("DEVBENCH_CONFIG_HOME", t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Interval(); got != interval.DefaultSettings() {
		t.Errorf("Interval() = %+v, want %+v", got, interval.DefaultSettings())
	}
	if cfg.SoundVolume() != 80 || !cfg.DesktopEnabled() {
		t.Errorf("alerts = volume %d desktop %v", cfg.SoundVolume(), cfg.DesktopEnabled())
	}
	if strings.Join(cfg.Rsync.Options, "") != "vzPe" || cfg.Rsync.Port != "22" {
		t.Errorf("rsync = %+v", cfg.Rsync)
	}
	if cfg.Log.Level != "info" || cfg.Log.File != LogPath() {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := writeConfig(t, `
timer:
  work_minutes: 50
  auto_start_breaks: false
alerts:
  sound: false
rsync:
  options: [a, v, --delete]
  excludes: [node_modules/]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := cfg.Interval()
	want := interval.Settings{
		Work:              50 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		LongBreakInterval: 4,
	}
	if got != want {
		t.Errorf("Interval() = %+v, want %+v", got, want)
	}
	if cfg.SoundVolume() != 0 {
		t.Errorf("SoundVolume() = %d, want 0 with sound off", cfg.SoundVolume())
	}
	if strings.Join(cfg.Rsync.Options, " ") != "a v --delete" || len(cfg.Rsync.Excludes) != 1 {
		t.Errorf("rsync = %+v", cfg.Rsync)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative minutes", "timer:\n  work_minutes: -5\n", "work duration"},
		{"bad interval", "timer:\n  long_break_interval: -1\n", "long break interval"},
		{"volume range", "alerts:\n  volume: 150\n", "volume"},
		{"unknown rsync option", "rsync:\n  options: [q]\n", `unknown option "q"`},
		{"log level", "log:\n  level: loud\n", "invalid level"},
		{"not yaml", "timer: [\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	cfg := Default()
	cfg.Timer.WorkMinutes = 0.5
	cfg.Rsync.Excludes = []string{".git/"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Interval().Work != 30*time.Second {
		t.Errorf("Work = %v, want 30s", loaded.Interval().Work)
	}
	if len(loaded.Rsync.Excludes) != 1 || loaded.Rsync.Excludes[0] != ".git/" {
		t.Errorf("Excludes = %v", loaded.Rsync.Excludes)
	}

	cfg.Timer.LongBreakInterval = -2
	if err := Save(path, cfg); err == nil {
		t.Error("Save(invalid) error = nil, want error")
	}
}

func TestYAML(t *testing.T) {
	data, err := Default().YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	for _, key := range []string{"timer:", "work_minutes: 25", "alerts:", "rsync:", "log:"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("YAML() missing %q:\n%s", key, data)
		}
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want time.Duration
	}{
		{25, 25 * time.Minute},
		{0.5, 30 * time.Second},
		{0.01, time.Second},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Minutes(tt.in); got != tt.want {
			t.Errorf("Minutes(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
