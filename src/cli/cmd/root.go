package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/mdsplice/src/config"
	"github.com/sofmeright/mdsplice/src/gitroot"
	"github.com/sofmeright/mdsplice/src/output"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	rootDir string // git worktree root, or the working directory outside a repo
	printer = output.NewPrinter()
)

var rootCmd = &cobra.Command{
	Use:   "mdsplice",
	Short: "Regenerate marked sections of README files",
	Long: `mdsplice replaces the text between two marker lines with a freshly
generated fenced code block. Typical use is keeping a README's CLI help
section in sync with the binary from a CI job.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Only run reads the targets config.
		if cmd.Name() != "run" {
			return nil
		}
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		rootDir, err = gitroot.ResolveRoot(cwd)
		if err != nil {
			return fmt.Errorf("resolving repository root: %w", err)
		}
		cfg, err = config.Load(rootDir, cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .mdsplice.yml, .mdsplice.yaml or .mdsplice.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printer.Error(err)
		return err
	}
	return nil
}
