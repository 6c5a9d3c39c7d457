package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// These variables are injected at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Display normalizes a release version to "vMAJOR.MINOR.PATCH[-pre]".
// Non-semver values such as "dev" pass through unchanged.
func Display(v string) string {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return "v" + parsed.String()
}

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("mdsplice %s (%s, %s)", Display(Version), Commit, BuildDate)
}
