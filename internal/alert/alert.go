package alert

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gorewood/devbench/internal/interval"
)

// Bell rings the terminal bell on PlaySound.
type Bell struct {
	W io.Writer
	// Volume is a percentage. Zero mutes the bell; a terminal bell has no
	// finer control than on or off.
	Volume int
}

// HandleEffect implements interval.EffectHandler.
func (b Bell) HandleEffect(effect interval.Effect) {
	if effect.Kind != interval.EffectPlaySound || b.Volume <= 0 || b.W == nil {
		return
	}
	_, _ = io.WriteString(b.W, "\a")
}

// Log records every effect at debug level.
type Log struct {
	Logger *slog.Logger
}

// HandleEffect implements interval.EffectHandler.
func (l Log) HandleEffect(effect interval.Effect) {
	if l.Logger == nil {
		return
	}
	l.Logger.Debug("timer effect", "kind", string(effect.Kind), "phase", string(effect.Phase))
}

// Multi fans an effect out to several handlers in order. Nil entries are
// skipped.
type Multi []interval.EffectHandler

// HandleEffect implements interval.EffectHandler.
func (m Multi) HandleEffect(effect interval.Effect) {
	for _, h := range m {
		if h != nil {
			h.HandleEffect(effect)
		}
	}
}

// WriteTitle sets the terminal window title with an OSC 0 sequence.
// Control characters in title are dropped so they cannot end the sequence
// early.
func WriteTitle(w io.Writer, title string) error {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, title)
	if _, err := fmt.Fprintf(w, "\033]0;%s\007", clean); err != nil {
		return fmt.Errorf("writing terminal title: %w", err)
	}
	return nil
}
