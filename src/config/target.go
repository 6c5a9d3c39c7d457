package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sofmeright/mdsplice/src/readme"
	"github.com/sofmeright/mdsplice/src/splice"
)

// Source kinds for a target's content.
const (
	SourceCommand = "command"
	SourceText    = "text"
	SourceFile    = "file"
)

// DefaultSection is used when a target names neither a section nor markers.
const DefaultSection = "cli-help"

// Target describes one managed region in one file.
type Target struct {
	Path    string `yaml:"path" toml:"path"`       // file path, relative to the repo root
	Section string `yaml:"section" toml:"section"` // shorthand for BEGIN_/END_ markers
	Begin   string `yaml:"begin" toml:"begin"`     // literal begin marker (overrides section)
	End     string `yaml:"end" toml:"end"`         // literal end marker (overrides section)
	Lang    string `yaml:"lang" toml:"lang"`       // fence info string

	// Content sources. At most one may be set; none means the help
	// command is detected from the project manifest.
	Command     string `yaml:"command" toml:"command"`
	Text        string `yaml:"text" toml:"text"`
	ContentFile string `yaml:"content_file" toml:"content_file"`

	Shell   bool   `yaml:"shell" toml:"shell"`     // run command through sh -c
	Timeout string `yaml:"timeout" toml:"timeout"` // e.g. "2m"; empty waits forever
}

// DefaultTarget mirrors readme.DefaultConfig with the command left for
// project detection.
func DefaultTarget() Target {
	return Target{
		Path:  readme.DefaultFile,
		Begin: readme.DefaultBeginMarker,
		End:   readme.DefaultEndMarker,
	}
}

// UnmarshalYAML accepts either a bare path ("docs/USAGE.md"), which gets
// the default CLI help markers, or the full object form.
func (t *Target) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = DefaultTarget()
		t.Path = value.Value
		return nil
	}

	type plain Target
	return value.Decode((*plain)(t))
}

// Markers returns the begin and end markers for the target. Explicit
// markers win over the section name.
func (t Target) Markers() (begin, end string) {
	section := t.Section
	if section == "" {
		section = DefaultSection
	}
	begin, end = t.Begin, t.End
	if begin == "" {
		begin = splice.SectionBegin(section)
	}
	if end == "" {
		end = splice.SectionEnd(section)
	}
	return begin, end
}

// SourceKind reports where the target's content comes from.
func (t Target) SourceKind() string {
	switch {
	case t.Text != "":
		return SourceText
	case t.ContentFile != "":
		return SourceFile
	default:
		return SourceCommand
	}
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (t Target) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(t.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", t.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", t.Timeout)
	}
	return d, nil
}

// Describe returns a short label for log lines.
func (t Target) Describe() string {
	if t.Section != "" {
		return t.Path + "#" + t.Section
	}
	return t.Path
}
