package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/devbench/internal/config"
	"github.com/gorewood/devbench/internal/output"
)

// newConfigCmd creates the config command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the settings file",
		Long: `Inspect or create settings.yaml.

The file lives in $DEVBENCH_CONFIG_HOME, $XDG_CONFIG_HOME/devbench,
%AppData%\devbench or ~/.config/devbench, in that order. Durations are in
minutes. Missing keys take their defaults.`,
	}
	cmd.AddCommand(newConfigPathCmd(), newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
			path := configPath(cmd)
			if printer.IsJSON() {
				_, statErr := os.Stat(path)
				return printer.WriteJSON(map[string]any{"path": path, "exists": statErr == nil})
			}
			printer.Println(path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			cfg, err := loadConfig(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}
			if printer.IsJSON() {
				return printer.WriteJSON(cfg)
			}
			data, err := cfg.YAML()
			if err != nil {
				return output.NewSystemErrorWithCause("cannot encode settings", err)
			}
			printer.Print("%s", data)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			path := configPath(cmd)

			if _, err := os.Stat(path); err == nil && !force {
				err := output.NewConflictError("settings file already exists: " + path + " (use --force to overwrite)")
				printer.Error(err)
				return err
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				err = output.NewSystemErrorWithCause("cannot check settings file", err)
				printer.Error(err)
				return err
			}

			if err := config.Save(path, config.Default()); err != nil {
				err = output.NewSystemErrorWithCause("cannot write settings", err)
				printer.Error(err)
				return err
			}
			return printer.Success(map[string]any{"message": "Wrote " + path, "path": path})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
