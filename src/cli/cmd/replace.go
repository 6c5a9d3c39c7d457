package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sofmeright/mdsplice/src/splice"
)

var (
	rpFile        string
	rpBegin       string
	rpEnd         string
	rpSection     string
	rpLang        string
	rpContent     string
	rpContentFile string
)

var replaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Replace the region between two markers with a fenced block",
	Long: `Replace everything between the first begin marker and the first end
marker of a file with a fenced code block wrapping the given content.

The markers themselves are kept. Content comes from --content, or from
--content-file ("-" reads stdin); trailing newlines of file input are
dropped. Use --section NAME as shorthand for
<!-- BEGIN_NAME --> / <!-- END_NAME --> markers.`,
	Example: `  mdsplice replace --begin '<!-- BEGIN_USAGE -->' --end '<!-- END_USAGE -->' --content-file usage.txt
  tool --help | mdsplice replace --section cli-help --content-file -`,
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().StringVarP(&rpFile, "file", "f", "README.md", "file to rewrite")
	replaceCmd.Flags().StringVar(&rpBegin, "begin", "", "begin marker")
	replaceCmd.Flags().StringVar(&rpEnd, "end", "", "end marker")
	replaceCmd.Flags().StringVar(&rpSection, "section", "", "named section (sets begin/end markers)")
	replaceCmd.Flags().StringVar(&rpLang, "lang", "", "language tag for the opening fence")
	replaceCmd.Flags().StringVar(&rpContent, "content", "", "content to place between the markers")
	replaceCmd.Flags().StringVar(&rpContentFile, "content-file", "", "read content from file (- for stdin)")

	replaceCmd.MarkFlagsMutuallyExclusive("content", "content-file")

	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	content, err := replaceContent(cmd.InOrStdin())
	if err != nil {
		return err
	}

	begin, end := rpBegin, rpEnd
	if rpSection != "" {
		if begin == "" {
			begin = splice.SectionBegin(rpSection)
		}
		if end == "" {
			end = splice.SectionEnd(rpSection)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "  replacing %s ... %s in %s\n", begin, end, rpFile)
	}

	if _, err := splice.Replace(rpFile, splice.Options{
		Content:     content,
		BeginMarker: begin,
		EndMarker:   end,
		Lang:        rpLang,
	}); err != nil {
		sectionHint(err, rpFile, rpSection)
		return err
	}

	printer.Updated(rpFile)
	return nil
}

func replaceContent(stdin io.Reader) (string, error) {
	switch rpContentFile {
	case "":
		return rpContent, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}

	data, err := os.ReadFile(rpContentFile)
	if err != nil {
		return "", fmt.Errorf("reading content file: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// sectionHint shows the lines to add when a named section is missing.
func sectionHint(err error, file, section string) {
	if section == "" || !errors.Is(err, splice.ErrMarkersNotFound) {
		return
	}
	printer.Warn("add the section to %s:\n%s", file, splice.WrapSection(section))
}
