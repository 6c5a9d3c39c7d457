package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_CleanHelpText(t *testing.T) {
	s := NewScanner()

	help := "Usage: tool [OPTIONS] <COMMAND>\n\nOptions:\n  -v, --verbose  Print more\n  -h, --help     Print help\n"
	assert.NoError(t, s.Check("README.md", help))
}

func TestCheck_DetectsKey(t *testing.T) {
	s := NewScanner()

	// Split so this file does not trip scanners itself.
	key := "ghp_" + "8Gq2yVx4Lk7Nw1Pz3Hc6Tb9Re5Ud0Fa2Jm4S"
	content := "Usage: tool\n\nExample:\n  GITHUB_TOKEN=" + key + " tool sync\n"

	err := s.Check("README.md", content)
	require.ErrorIs(t, err, ErrSecretDetected)
	assert.Contains(t, err.Error(), "README.md")

	findings, err := s.Scan(content)
	require.NoError(t, err)
	require.NotEmpty(t, findings)

	rules := make([]string, 0, len(findings))
	for _, f := range findings {
		rules = append(rules, f.RuleID)
	}
	assert.Contains(t, rules, "github-pat")
}
