package alert

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/gorewood/devbench/internal/interval"
)

// ErrUnsupported is returned for platforms without a known notifier.
var ErrUnsupported = errors.New("desktop notifications unsupported on this platform")

// Desktop shows a desktop notification on ShowNotification by running the
// platform notifier. It never blocks on the notifier process.
type Desktop struct {
	logger *slog.Logger
	goos   string
	run    func(name string, args ...string) error

	warnOnce sync.Once
}

// NewDesktop creates a Desktop notifier for the running platform.
func NewDesktop(logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Desktop{logger: logger, goos: runtime.GOOS, run: startDetached}
}

// HandleEffect implements interval.EffectHandler.
func (d *Desktop) HandleEffect(effect interval.Effect) {
	if effect.Kind != interval.EffectShowNotification {
		return
	}
	message := interval.NotificationMessage(effect.Phase)
	if message == "" {
		return
	}
	if err := d.Notify(interval.NotificationTitle, message); err != nil {
		d.warnOnce.Do(func() {
			d.logger.Warn("desktop notifications disabled", "error", err)
		})
	}
}

// Notify shows one notification.
func (d *Desktop) Notify(title, message string) error {
	name, args, err := notifierCommand(d.goos, title, message)
	if err != nil {
		return err
	}
	return d.run(name, args...)
}

// notifierCommand returns the command that shows a notification on goos.
func notifierCommand(goos, title, message string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{"--app-name=devbench", title, message}, nil
	case "darwin":
		script := `display notification "` + appleScriptQuote(message) +
			`" with title "` + appleScriptQuote(title) + `"`
		return "osascript", []string{"-e", script}, nil
	case "windows":
		script := "[void][System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms');" +
			"$n = New-Object System.Windows.Forms.NotifyIcon;" +
			"$n.Icon = [System.Drawing.SystemIcons]::Information;" +
			"$n.Visible = $true;" +
			"$n.ShowBalloonTip(5000, '" + powerShellQuote(title) + "', '" + powerShellQuote(message) + "', 'Info');" +
			"Start-Sleep -Seconds 6; $n.Dispose()"
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}, nil
	default:
		return "", nil, ErrUnsupported
	}
}

func appleScriptQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func powerShellQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// startDetached starts the command and reaps it in the background.
func startDetached(name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return err
	}
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
