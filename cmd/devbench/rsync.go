package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/devbench/internal/output"
	"github.com/gorewood/devbench/internal/rsync"
)

// rsyncFlags holds the flags of the rsync command.
type rsyncFlags struct {
	direction  string
	local      string
	remote     string
	user       string
	host       string
	path       string
	port       string
	source     string
	sourcePort string
	dest       string
	destPort   string
	options    []string
	noDefaults bool
	excludes   []string
}

// newRsyncCmd creates the rsync command.
func newRsyncCmd() *cobra.Command {
	var flags rsyncFlags
	cmd := &cobra.Command{
		Use:   "rsync",
		Short: "Build an rsync command line",
		Long: `Build an rsync command line from a direction, endpoints and options.

Short options are grouped (-avz). A non-default ssh port adds -e "ssh -p N"
when the e option is on. Exclude patterns turn on --exclude.

Examples:
  devbench rsync --local ./site/ --remote deploy@web:/srv/site/
  devbench rsync --direction pull --local ./backup/ --remote me@nas:/data/ --port 2222
  devbench rsync --direction s2s --source a@one:/src/ --dest b@two:/dst/
  devbench rsync -o a -o --delete --exclude '*.log' --local ./ --remote host:/x/`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRsync(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.direction, "direction", "d", "", "local-to-remote (push), remote-to-local (pull) or server-to-server (s2s)")
	cmd.Flags().StringVar(&flags.local, "local", "", "Local path")
	cmd.Flags().StringVar(&flags.remote, "remote", "", "Remote endpoint as user@host:path")
	cmd.Flags().StringVar(&flags.user, "user", "", "Remote user (with --host)")
	cmd.Flags().StringVar(&flags.host, "host", "", "Remote host (instead of --remote)")
	cmd.Flags().StringVar(&flags.path, "path", "", "Remote path (with --host)")
	cmd.Flags().StringVarP(&flags.port, "port", "p", "", "Remote ssh port")
	cmd.Flags().StringVar(&flags.source, "source", "", "Server-to-server source as user@host:path")
	cmd.Flags().StringVar(&flags.sourcePort, "source-port", "", "Source server ssh port")
	cmd.Flags().StringVar(&flags.dest, "dest", "", "Server-to-server destination as user@host:path")
	cmd.Flags().StringVar(&flags.destPort, "dest-port", "", "Destination server ssh port")
	cmd.Flags().StringArrayVarP(&flags.options, "option", "o", nil, "Enable a catalog option (repeatable; see 'devbench rsync options')")
	cmd.Flags().BoolVar(&flags.noDefaults, "no-defaults", false, "Start from no options instead of the configured defaults")
	cmd.Flags().StringArrayVar(&flags.excludes, "exclude", nil, "Exclude pattern (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("remote", "host")

	cmd.AddCommand(newRsyncOptionsCmd())
	cmd.AddCommand(newRsyncPreviewCmd())
	return cmd
}

// runRsync executes the rsync command.
func runRsync(cmd *cobra.Command, flags rsyncFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	spec := flags.spec(cfg.Rsync.Options, cfg.Rsync.Excludes, cfg.Rsync.Port)
	rc, err := spec.Config()
	if err != nil {
		err = output.NewUserErrorWithCause("invalid rsync arguments", err)
		printer.Error(err)
		return err
	}
	command := rsync.BuildCommand(rc)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"command":   command,
			"direction": rc.Direction,
			"options":   rc.Options,
		})
	}
	title := ""
	if printer.IsTTY() {
		title = "rsync (" + string(rc.Direction) + ")"
	}
	printer.Box(title, command)
	return nil
}

// spec merges the flags over the configured defaults.
func (f rsyncFlags) spec(defaultOptions, defaultExcludes []string, defaultPort string) rsync.Spec {
	options := f.options
	if !f.noDefaults {
		options = append(append([]string{}, defaultOptions...), f.options...)
	} else if options == nil {
		options = []string{}
	}
	excludes := f.excludes
	if excludes == nil {
		excludes = defaultExcludes
	}

	remote := f.remote
	if remote == "" && f.host != "" {
		remote = rsync.Endpoint{User: f.user, Host: f.host, Path: f.path}.String()
	}

	return rsync.Spec{
		Direction:  f.direction,
		Local:      f.local,
		Remote:     remote,
		Port:       orDefault(f.port, defaultPort),
		Source:     f.source,
		SourcePort: orDefault(f.sourcePort, defaultPort),
		Dest:       f.dest,
		DestPort:   orDefault(f.destPort, defaultPort),
		Options:    options,
		Excludes:   excludes,
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// newRsyncOptionsCmd lists the option catalog.
func newRsyncOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the rsync options devbench knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
			catalog := rsync.Catalog()
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"options": catalog})
			}
			rows := make([][]string, 0, len(catalog))
			for _, opt := range catalog {
				def := ""
				if opt.Default {
					def = "yes"
				}
				rows = append(rows, []string{displayFlag(opt.Flag), def, opt.Description})
			}
			printer.Table([]string{"FLAG", "DEFAULT", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

// displayFlag renders a catalog flag the way it appears on the command line.
func displayFlag(flag string) string {
	if strings.HasPrefix(flag, "-") {
		return flag
	}
	return "-" + flag
}

// previewFlags holds the flags of the rsync preview command.
type previewFlags struct {
	from     string
	to       string
	delete   bool
	excludes []string
}

// newRsyncPreviewCmd creates the rsync preview command.
func newRsyncPreviewCmd() *cobra.Command {
	var flags previewFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show what a transfer between two local directories would change",
		Long: `Compare two local directories and list the files a transfer would create,
update or delete. Nothing is copied. Files differ when their sizes differ.

Examples:
  devbench rsync preview --from ./site --to /mnt/backup/site
  devbench rsync preview --from ./site --to ./mirror --delete --exclude '*.tmp'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRsyncPreview(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.from, "from", "", "Source directory")
	cmd.Flags().StringVar(&flags.to, "to", "", "Destination directory (may not exist)")
	cmd.Flags().BoolVar(&flags.delete, "delete", false, "Also list destination files missing from the source")
	cmd.Flags().StringArrayVar(&flags.excludes, "exclude", nil, "Exclude pattern (repeatable)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// runRsyncPreview executes the rsync preview command.
func runRsyncPreview(cmd *cobra.Command, flags previewFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	excludes := flags.excludes
	if excludes == nil {
		excludes = cfg.Rsync.Excludes
	}

	plan, err := rsync.Preview(flags.from, flags.to, rsync.PlanOptions{Delete: flags.delete, Excludes: excludes})
	if err != nil {
		err = output.NewUserErrorWithCause("cannot preview transfer", err)
		printer.Error(err)
		return err
	}

	counts := plan.Counts()
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"items":    plan.Items,
			"excluded": plan.Excluded,
			"counts":   counts,
			"bytes":    plan.Bytes(),
		})
	}

	if len(plan.Items) == 0 {
		printer.Println("Nothing to transfer.")
	} else {
		rows := make([][]string, 0, len(plan.Items))
		for _, item := range plan.Items {
			rows = append(rows, []string{string(item.Action), item.File.HumanSize(), item.File.Name})
		}
		printer.Table([]string{"ACTION", "SIZE", "NAME"}, rows)
	}
	printer.Println()
	printer.Println(printer.Styles().Muted.Render(fmt.Sprintf("%d to create, %d to update, %d to delete, %s to transfer",
		counts[rsync.ActionCreate], counts[rsync.ActionUpdate], counts[rsync.ActionDelete], plan.HumanBytes())))
	if len(plan.Excluded) > 0 {
		printer.Println(printer.Styles().Muted.Render("excluded: " + strings.Join(plan.Excluded, ", ")))
	}
	return nil
}
