package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/devbench/internal/config"
	"github.com/gorewood/devbench/internal/output"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.yaml")

	stdout, _, err := executeCmd(t, "", "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(stdout, "Wrote "+path) {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("written file should load: %v", err)
	}

	_, _, err = executeCmd(t, "", "--config", path, "config", "init")
	if code := output.GetExitCode(err); code != output.ExitConflict {
		t.Errorf("second init exit code = %d, want %d (err %v)", code, output.ExitConflict, err)
	}

	if _, _, err := executeCmd(t, "", "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeTestFile(t, path, "timer:\n  work_minutes: 50\n")

	stdout, _, err := executeCmd(t, "", "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	for _, want := range []string{"work_minutes: 50", "short_break_minutes: 5", "long_break_interval: 4"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = executeCmd(t, "", "--json", "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("show --json error = %v", err)
	}
	timer, ok := decodeJSON(t, stdout)["timer"].(map[string]any)
	if !ok || timer["work_minutes"] != float64(50) {
		t.Errorf("timer = %v", timer)
	}
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := executeCmd(t, "", "--config", filepath.Join(dir, "x.yaml"), "--json", "config", "path")
	if err != nil {
		t.Fatalf("path error = %v", err)
	}
	result := decodeJSON(t, stdout)
	if result["path"] != filepath.Join(dir, "x.yaml") || result["exists"] != false {
		t.Errorf("result = %v", result)
	}
}
