// Package alert carries out the side effects an interval.Machine requests:
// bells, desktop notifications and log lines.
package alert
