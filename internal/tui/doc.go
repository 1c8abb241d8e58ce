// Package tui is the full-screen timer for `devbench timer`.
//
// The model never ticks on its own. It waits on the runner's event stream,
// renders each snapshot, and forwards key presses to the runner.
package tui
