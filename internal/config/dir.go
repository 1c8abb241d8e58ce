// Package config loads and saves the devbench settings file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the settings file inside Dir.
const FileName = "settings.yaml"

// Dir returns the devbench configuration directory.
//
// Resolution:
//   - $DEVBENCH_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/devbench if set (respects XDG on any platform)
//   - %AppData%/devbench on Windows
//   - ~/.config/devbench on macOS and Linux
func Dir() string {
	if dir := os.Getenv("DEVBENCH_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devbench")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "devbench")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "devbench")
}

// Path returns the settings file path.
func Path() string {
	return filepath.Join(Dir(), FileName)
}

// LogPath returns the default rotated log file path.
func LogPath() string {
	return filepath.Join(Dir(), "logs", "devbench.log")
}
