package main

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/devbench/internal/alert"
	devbenchmcp "github.com/gorewood/devbench/internal/mcp"
	"github.com/gorewood/devbench/internal/output"
	"github.com/gorewood/devbench/internal/timer"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run devbench as a Model Context Protocol (MCP) server over stdio.

This exposes devbench tools to any MCP-capable agent environment (Claude Code,
Cursor, Windsurf, Gemini CLI, etc). The server owns one interval timer that
ticks for the server's lifetime; phase changes raise desktop notifications.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "devbench": {
        "command": "devbench",
        "args": ["serve"]
      }
    }
  }

Available tools: rsync_command, rsync_preview, convert_markup, timer_status,
timer_control, timer_settings`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

// runServe executes the serve command. Stdout carries the protocol, so logs
// go to the log file only.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cmd, cfg, nil)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	effects := alert.Multi{alert.Log{Logger: logger}}
	if cfg.DesktopEnabled() {
		effects = append(effects, alert.NewDesktop(logger))
	}
	runner := timer.New(cfg.Interval(), timer.Config{Effects: effects, Logger: logger})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() { _ = runner.Run(ctx) }()

	logger.Info("mcp server starting", "version", buildVersion(), "session", runner.Session())
	server := devbenchmcp.NewServer(buildVersion(), devbenchmcp.Deps{Timer: runner, Config: cfg})
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server stopped", "error", err)
		return output.NewSystemErrorWithCause("mcp server failed", err)
	}
	logger.Info("mcp server stopped")
	return nil
}
