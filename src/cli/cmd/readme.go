package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/mdsplice/src/config"
	"github.com/sofmeright/mdsplice/src/readme"
)

var (
	rmFile    string
	rmCommand string
	rmLang    string
	rmShell   bool
	rmTimeout time.Duration
	rmCheck   bool
)

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Regenerate the CLI help block in README.md",
	Long: `Run the CLI's help command and place its trimmed output between the
<!-- BEGIN_CLI_HELP --> and <!-- END_CLI_HELP --> markers of README.md
as an untagged fenced block.

Defaults match a Rust crate ("cargo run --quiet -- --help"). Any failure
(command error, empty help output, missing markers) leaves README.md
untouched and exits 1.`,
	RunE: runReadme,
}

func init() {
	def := readme.DefaultConfig()
	readmeCmd.Flags().StringVarP(&rmFile, "file", "f", def.File, "README to rewrite")
	readmeCmd.Flags().StringVar(&rmCommand, "command", def.Command, "command that prints the help text")
	readmeCmd.Flags().StringVar(&rmLang, "lang", def.Lang, "language tag for the opening fence")
	readmeCmd.Flags().BoolVar(&rmShell, "shell", false, "run the command through sh -c")
	readmeCmd.Flags().DurationVar(&rmTimeout, "timeout", 0, "kill the command after this long (0 waits)")
	readmeCmd.Flags().BoolVar(&rmCheck, "check", false, "fail if README.md is out of date instead of writing it")

	rootCmd.AddCommand(readmeCmd)
}

func runReadme(cmd *cobra.Command, args []string) error {
	rc := readme.DefaultConfig()
	rc.File = rmFile
	rc.Command = rmCommand
	rc.Lang = rmLang
	rc.Shell = rmShell
	rc.Timeout = rmTimeout

	ctx := cmd.Context()
	u := readme.New(rc)
	if verbose {
		fmt.Fprintf(os.Stderr, "  running %s\n", rc.Command)
	}

	if rmCheck {
		change, err := u.Plan(ctx)
		if err != nil {
			sectionHint(err, rc.File, config.DefaultSection)
			return err
		}
		if change.Changed() {
			return fmt.Errorf("%s is out of date; run mdsplice readme", rc.File)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", rc.File)
		return nil
	}

	if _, err := u.Update(ctx); err != nil {
		sectionHint(err, rc.File, config.DefaultSection)
		return err
	}
	printer.Updated(rc.File)
	return nil
}
