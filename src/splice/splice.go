// Package splice replaces the region between two literal markers in a text
// document with a fenced code block.
//
// A managed region looks like:
//
//	<!-- BEGIN_CLI_HELP -->
//	```
//	...generated content...
//	```
//	<!-- END_CLI_HELP -->
//
// Both markers are located by their first literal occurrence, each searched
// from the start of the document. Everything up to and including the begin
// marker, and everything from the end marker onward, is preserved byte for
// byte. Content outside the markers is never touched.
package splice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig reports a missing required argument. No I/O has happened.
	ErrConfig = errors.New("invalid splice configuration")

	// ErrMarkersNotFound reports that one or both markers are absent.
	ErrMarkersNotFound = errors.New("markers not found")

	// ErrMarkerOrder reports an end marker whose first occurrence comes
	// before the end of the begin marker.
	ErrMarkerOrder = errors.New("end marker precedes begin marker")
)

const fence = "```"

// Options describes a single splice.
type Options struct {
	Content     string // text placed inside the fenced block
	BeginMarker string
	EndMarker   string
	Lang        string // optional info string after the opening fence
}

// Validate checks the required arguments.
func (o Options) Validate() error {
	if o.Content == "" {
		return fmt.Errorf("%w: content is required", ErrConfig)
	}
	if o.BeginMarker == "" || o.EndMarker == "" {
		return fmt.Errorf("%w: begin and end markers are required", ErrConfig)
	}
	return nil
}

// Fence wraps text in a triple-backtick block with an optional language tag.
func Fence(lang, text string) string {
	return fence + lang + "\n" + text + "\n" + fence
}

// Splice returns doc with the region between the markers replaced by the
// fenced content. On error doc is returned unchanged.
func Splice(doc string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return doc, err
	}

	beginIdx := strings.Index(doc, opts.BeginMarker)
	endIdx := strings.Index(doc, opts.EndMarker)
	if beginIdx < 0 || endIdx < 0 {
		return doc, ErrMarkersNotFound
	}

	afterBegin := beginIdx + len(opts.BeginMarker)
	if endIdx < afterBegin {
		return doc, ErrMarkerOrder
	}

	var b strings.Builder
	b.Grow(afterBegin + len(opts.Content) + len(opts.Lang) + 10 + len(doc) - endIdx)
	b.WriteString(doc[:afterBegin])
	b.WriteString("\n")
	b.WriteString(Fence(opts.Lang, opts.Content))
	b.WriteString("\n")
	b.WriteString(doc[endIdx:])

	return b.String(), nil
}

// Between returns the raw text between the begin marker and the end marker.
func Between(doc, beginMarker, endMarker string) (string, bool) {
	beginIdx := strings.Index(doc, beginMarker)
	endIdx := strings.Index(doc, endMarker)
	if beginIdx < 0 || endIdx < 0 {
		return "", false
	}
	afterBegin := beginIdx + len(beginMarker)
	if endIdx < afterBegin {
		return "", false
	}
	return doc[afterBegin:endIdx], true
}
