package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/mdsplice/src/output"
	"github.com/sofmeright/mdsplice/src/pipeline"
	"github.com/sofmeright/mdsplice/src/splice"
)

var (
	runCheck       bool
	runDryRun      bool
	runScanSecrets bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply every target from the config file",
	Long: `Regenerate every managed region listed in .mdsplice.yml.

The config file and relative target paths resolve against the git
worktree root. Each file is read once, all of its targets are applied in
order, and it is written once. A file with any failing target is left
untouched.

Without a config file, this regenerates the CLI help block of README.md
using a help command detected from Cargo.toml or go.mod.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runCheck, "check", false, "report out-of-date files and exit non-zero, without writing")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print resulting files without writing")
	runCmd.Flags().BoolVar(&runScanSecrets, "scan-secrets", false, "refuse to write generated content containing secrets")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if verbose {
		src := cfg.Source
		if src == "" {
			src = "defaults"
		}
		fmt.Fprintf(os.Stderr, "  config %s, root %s\n", src, rootDir)
	}

	p := pipeline.New(pipeline.Options{
		RootDir:     rootDir,
		Check:       runCheck,
		DryRun:      runDryRun,
		ScanSecrets: runScanSecrets || cfg.ScanSecrets,
		Concurrency: cfg.Concurrency,
	})

	start := time.Now()
	results, runErr := p.Run(cmd.Context(), cfg.Targets)
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	if runDryRun {
		for _, res := range results {
			if res.Status == output.StatusUpdated {
				fmt.Fprintf(w, "  splice %s (changed)\n", res.Path)
				fmt.Fprintln(w, res.Change.After)
			}
		}
	}

	if runCheck && verbose {
		for _, res := range results {
			if res.Status == output.StatusDrift {
				printStale(res)
			}
		}
	}

	sec := output.NewSection(w, "Splice", elapsed, printer.Color)
	for _, res := range results {
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		sec.TargetRow(res.Path, res.Status, detail)
		if res.Dirty {
			printer.Warn("%s had uncommitted changes before it was rewritten", res.Path)
		}
	}
	sec.Close()

	return runErr
}

// printStale shows each out-of-date region of a drifted file next to its
// regenerated text.
func printStale(res pipeline.FileResult) {
	for _, t := range res.Targets {
		begin, end := t.Markers()
		before, _ := splice.Between(res.Change.Before, begin, end)
		after, _ := splice.Between(res.Change.After, begin, end)
		if before == after {
			continue
		}
		fmt.Fprintf(printer.Err, "  stale %s\n--- current\n%s\n+++ generated\n%s\n",
			t.Describe(), strings.Trim(before, "\n"), strings.Trim(after, "\n"))
	}
}
