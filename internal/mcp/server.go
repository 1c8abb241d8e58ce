// Package mcp provides a Model Context Protocol server for devbench.
// It exposes the rsync builder, the markup converter and a shared interval
// timer as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/devbench/internal/config"
	"github.com/gorewood/devbench/internal/timer"
)

// Deps is what the tools operate on. Config supplies rsync defaults; a nil
// Config uses config.Default().
type Deps struct {
	Timer  *timer.Runner
	Config *config.Config
}

// NewServer creates an MCP server with all devbench tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "devbench",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that change timer state.
// Reset and skip throw away progress, so they count as destructive.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all devbench tools to the server.
func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rsync_command",
		Description: "Build an rsync command line. Directions: local-to-remote (default), remote-to-local, server-to-server. Remotes use user@host:path.",
		Annotations: readOnlyAnnotations(),
	}, handleRsyncCommand(deps.Config))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rsync_preview",
		Description: "Compare two local directories and list which files a transfer would create, update or delete. Nothing is copied.",
		Annotations: readOnlyAnnotations(),
	}, handleRsyncPreview(deps.Config))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_markup",
		Description: "Convert a Markdown subset to HTML, or HTML back to Markdown. Pattern based, not a full parser.",
		Annotations: readOnlyAnnotations(),
	}, handleConvert())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "timer_status",
		Description: "Show the interval timer: phase, label, remaining seconds, clock, running state and completed work phases.",
		Annotations: readOnlyAnnotations(),
	}, handleTimerStatus(deps.Timer))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "timer_control",
		Description: "Start, pause, reset or skip the interval timer. Returns the resulting status.",
		Annotations: writeAnnotations(),
	}, handleTimerControl(deps.Timer))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "timer_settings",
		Description: "Change timer settings. Durations are in minutes; omitted fields stay unchanged. A paused phase whose duration changes restarts from the new length.",
		Annotations: writeAnnotations(),
	}, handleTimerSettings(deps.Timer))
}
