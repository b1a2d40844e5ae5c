package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Nomadcxx/animename/internal/batch"
	"github.com/Nomadcxx/animename/internal/release"
	"github.com/Nomadcxx/animename/internal/ui"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <name>...",
		Short: "Parse one or more release names",
		Long: `Parse release names and print the extracted metadata.

Examples:
  animename parse "[GroupX] Show Name - 05 [1080p].mkv"
  animename parse --json "Show.Name.S02E10.HEVC-GroupY" "第二季第三集"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				return writeElementsJSON(out, args)
			}
			for _, name := range args {
				ui.Section(out, name)
				fmt.Fprintln(out, ui.RenderElement(release.Parse(name)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

// writeElementsJSON prints one element for a single name, otherwise a list
// of name/element pairs.
func writeElementsJSON(w io.Writer, names []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if len(names) == 1 {
		return enc.Encode(release.Parse(names[0]))
	}
	results := make([]batch.Result, len(names))
	for i, name := range names {
		results[i] = batch.Result{Name: name, Element: release.Parse(name)}
	}
	return enc.Encode(results)
}

func newBatchCmd() *cobra.Command {
	var (
		limit    int
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Parse a file of release names concurrently",
		Long: `Parse every line of a file as a release name and print the results as
a JSON array. Blank lines and lines starting with '#' are skipped.
Use "-" to read from stdin.

Examples:
  animename batch names.txt
  ls /downloads | animename batch - --limit 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Parser.Concurrency
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("cannot open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			names, err := batch.ReadNames(in)
			if err != nil {
				return err
			}

			var p batch.Progress
			if progress {
				p = ui.NewProgressBar(cmd.ErrOrStderr(), len(names), "parsing")
			}

			start := time.Now()
			elems, err := batch.ParseAllProgress(commandContext(cmd), names, limit, p)
			if err != nil {
				return err
			}

			results := make([]batch.Result, len(names))
			for i, name := range names {
				results[i] = batch.Result{Name: name, Element: elems[i]}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(results); err != nil {
				return err
			}

			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "parsed %s names in %s\n",
					ui.FormatCount(len(names)), ui.FormatDuration(time.Since(start)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "max concurrent workers (default: [parser] concurrency, 0 = one per CPU)")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [name]",
		Short: "Interactively parse a name as you type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := strings.Join(args, " ")
			if !ui.IsInteractive() {
				return fmt.Errorf("inspect needs a terminal (use 'animename parse' instead)")
			}
			e, err := ui.RunInspect(initial)
			if err != nil {
				return err
			}
			if !e.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.RenderElement(e))
			}
			return nil
		},
	}
}

// commandContext returns cmd's context, or Background when the command runs
// outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
