// Package output renders devbench command results for people and for
// scripts.
//
// Every command builds a Printer from its writer, the --json flag and the
// --color mode:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, useColor(cmd))
//	printer.Box("rsync", command)        // bordered on a terminal, plain when piped
//	printer.WriteJSON(map[string]any{"command": command})
//
// Human output uses lipgloss styles that are dropped entirely when color is
// off, so piped output never carries escape codes. Column widths are measured
// in terminal cells, so paths with wide runes still line up.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags, invalid settings, unreadable input
//	output.ExitSystemError // 2: I/O, terminal or notifier failures
//	output.ExitConflict    // 3: the file to create already exists
//
// Commands return *ExitError values built with NewUserError,
// NewSystemErrorWithCause and friends. main maps them to the process exit
// code with GetExitCode; in JSON mode they are printed as
// {"error": "...", "code": N}.
package output
