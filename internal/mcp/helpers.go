package mcp

import (
	"strings"
	"time"

	"github.com/gorewood/devbench/internal/config"
)

// withDefault returns value, or fallback when value is blank.
func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// minutesPtr converts an optional minute count to a duration.
func minutesPtr(m *float64) *time.Duration {
	if m == nil {
		return nil
	}
	d := config.Minutes(*m)
	return &d
}
