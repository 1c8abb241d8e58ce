// Package timer runs an interval.Machine in real time.
//
// A Runner owns the machine behind a mutex, ticks it from a time.Ticker in
// Run, and fans state changes out to subscribers. The terminal UI, the
// headless timer command and the MCP server all drive the same Runner API.
package timer
