package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/devbench/internal/markup"
	"github.com/gorewood/devbench/internal/output"
)

// convertFlags holds the flags of the convert command.
type convertFlags struct {
	to         string
	css        string
	title      string
	standalone bool
	out        string
	rules      bool
}

// newConvertCmd creates the convert command.
func newConvertCmd() *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: "Convert a Markdown subset to HTML, or HTML to Markdown",
		Long: `Convert text between a Markdown subset and HTML with an ordered list of
pattern rules. Reads FILE, or stdin when FILE is omitted or "-".

Markdown support: headings, emphasis, strikethrough, inline and fenced code,
links, images, blockquotes, lists, horizontal rules and paragraphs.

Examples:
  devbench convert notes.md                       # HTML fragment to stdout
  devbench convert notes.md --standalone --out notes.html
  devbench convert page.html --to markdown
  cat notes.md | devbench convert --css theme.css --out notes.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.to, "to", "t", "html", "Target format: html or markdown")
	cmd.Flags().StringVar(&flags.css, "css", "", "Stylesheet file for standalone HTML (implies --standalone)")
	cmd.Flags().StringVar(&flags.title, "title", "", "Document title for standalone HTML (default: first heading)")
	cmd.Flags().BoolVarP(&flags.standalone, "standalone", "s", false, "Wrap HTML output in a complete document")
	cmd.Flags().StringVarP(&flags.out, "out", "O", "", "Write to FILE instead of stdout")
	cmd.Flags().BoolVar(&flags.rules, "rules", false, "List the conversion rules in order and exit")
	return cmd
}

// runConvert executes the convert command.
func runConvert(cmd *cobra.Command, args []string, flags convertFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	dir, err := markup.ParseDirection(flags.to)
	if err != nil {
		err = output.NewUserErrorWithCause("invalid --to", err)
		printer.Error(err)
		return err
	}

	if flags.rules {
		names := markup.Rules(dir)
		if printer.IsJSON() {
			return printer.WriteJSON(map[string]any{"direction": dir, "rules": names})
		}
		for i, name := range names {
			printer.Print("%2d. %s\n", i+1, name)
		}
		return nil
	}

	input, err := readInput(cmd, args)
	if err != nil {
		printer.Error(err)
		return err
	}

	result := markup.Convert(input, dir)
	if dir == markup.MarkdownToHTML && (flags.standalone || flags.css != "") {
		page := markup.Page{Title: flags.title}
		if flags.css != "" {
			css, readErr := os.ReadFile(flags.css)
			if readErr != nil {
				err = output.NewUserErrorWithCause("cannot read stylesheet", readErr)
				printer.Error(err)
				return err
			}
			page.CSS = string(css)
		}
		result = markup.Document(result, page)
	}

	if flags.out != "" {
		if err := os.WriteFile(flags.out, []byte(ensureNewline(result)), 0o644); err != nil {
			err = output.NewSystemErrorWithCause("cannot write output", err)
			printer.Error(err)
			return err
		}
		if printer.IsJSON() {
			return printer.WriteJSON(map[string]any{"direction": dir, "path": flags.out})
		}
		printer.Println(printer.Styles().Success.Render("Wrote " + flags.out))
		return nil
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"direction": dir, "output": result})
	}
	printer.Print("%s", ensureNewline(result))
	return nil
}

// readInput reads the single FILE argument, or stdin for none or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", output.NewUserErrorWithCause("cannot read input", err)
	}
	return string(data), nil
}

func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
