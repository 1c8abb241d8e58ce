// Package logging builds the slog logger shared by every command: tint
// handlers for the console and for a lumberjack-rotated file.
package logging
