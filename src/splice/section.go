package splice

import "strings"

// Named sections are shorthand for a marker pair:
//
//	cli-help  ->  <!-- BEGIN_CLI_HELP --> ... <!-- END_CLI_HELP -->
//
// The name is upper-cased and dashes, dots and spaces become underscores.

// SectionBegin returns the opening marker for a named section.
func SectionBegin(name string) string {
	return "<!-- BEGIN_" + sectionKey(name) + " -->"
}

// SectionEnd returns the closing marker for a named section.
func SectionEnd(name string) string {
	return "<!-- END_" + sectionKey(name) + " -->"
}

// WrapSection returns an empty named section ready to be spliced into.
func WrapSection(name string) string {
	return SectionBegin(name) + "\n" + SectionEnd(name)
}

func sectionKey(name string) string {
	key := strings.ToUpper(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(key)
}
