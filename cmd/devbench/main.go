// Package main provides the entry point for the devbench CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/devbench/internal/config"
	"github.com/gorewood/devbench/internal/logging"
	"github.com/gorewood/devbench/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// useColor resolves --color against the command's stdout.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// configPath returns --config or the default settings path.
func configPath(cmd *cobra.Command) string {
	if path := persistentFlag(cmd, "config"); path != "" {
		return path
	}
	return config.Path()
}

// loadConfig reads the settings file. Errors are user errors: the file
// exists but is malformed or invalid.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, output.NewUserErrorWithCause("cannot load settings", err)
	}
	return cfg, nil
}

// newLogger sets up logging for a long-running command. console is nil when
// the command owns the terminal or stdout.
func newLogger(cmd *cobra.Command, cfg *config.Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	level := cfg.Log.Level
	if flagLevel := persistentFlag(cmd, "log-level"); flagLevel != "" {
		level = flagLevel
	}
	logger, closer, err := logging.Setup(logging.Options{
		File:    cfg.Log.File,
		Level:   level,
		Console: console,
	})
	if err != nil {
		return nil, nil, output.NewSystemErrorWithCause("cannot open log", err)
	}
	return logger, closer, nil
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the devbench CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devbench",
		Short: "Small developer tools: rsync commands, markup conversion, interval timer",
		Long: `Devbench - a workbench of small developer tools.

  rsync     Build rsync command lines and preview local transfers
  convert   Convert a Markdown subset to HTML and back
  timer     Run a work/break interval timer in the terminal
  serve     Expose all of the above as MCP tools over stdio

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'devbench --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	cmd.PersistentFlags().String("config", "", "Settings file (default "+config.Path()+")")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides settings)")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "tools", Title: "Tools:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newRsyncCmd(), "tools")
	addGroupedCommand(cmd, newConvertCmd(), "tools")
	addGroupedCommand(cmd, newTimerCmd(), "tools")

	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newConfigCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
