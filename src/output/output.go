package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Status values reported per target.
const (
	StatusUpdated   = "updated"
	StatusUnchanged = "unchanged"
	StatusDrift     = "drift"
	StatusFailed    = "failed"
)

// IsCI reports whether we are running inside a CI job.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return !color.NoColor || IsCI()
}

// Printer writes progress lines and diagnostics.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// NewPrinter returns a printer on stdout/stderr with color auto-detection.
func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, Color: UseColor()}
}

// Updated logs a successful write in the "<path> updated successfully" form.
func (p *Printer) Updated(path string) {
	fmt.Fprintf(p.Out, "%s updated successfully\n", path)
}

// Target logs one target's outcome.
func (p *Printer) Target(label, status string) {
	fmt.Fprintf(p.Out, "  splice %s %s (%s)\n", p.icon(status), label, status)
}

// Warn writes a warning to the error stream.
func (p *Printer) Warn(format string, args ...any) {
	prefix := paint(p.Color, "warning:", color.FgYellow)
	fmt.Fprintf(p.Err, "  %s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Error writes "Error: <err>" to the error stream.
func (p *Printer) Error(err error) {
	prefix := paint(p.Color, "Error:", color.FgRed, color.Bold)
	fmt.Fprintf(p.Err, "%s %v\n", prefix, err)
}

func (p *Printer) icon(status string) string {
	return StatusIcon(status, p.Color)
}

// StatusIcon returns a status glyph, colored when color is true.
func StatusIcon(status string, useColor bool) string {
	var glyph string
	var attr color.Attribute
	switch status {
	case StatusUpdated:
		glyph, attr = "✓", color.FgGreen
	case StatusFailed:
		glyph, attr = "✗", color.FgRed
	case StatusDrift:
		glyph, attr = "≠", color.FgYellow
	default:
		glyph, attr = "·", color.FgHiBlack
	}
	return paint(useColor, glyph, attr)
}

// Dimmed returns dimmed text if color is enabled.
func Dimmed(text string, useColor bool) string {
	return paint(useColor, text, color.FgHiBlack)
}

// paint colors text regardless of color.NoColor, so CI logs keep color
// even though stdout is not a terminal there.
func paint(useColor bool, text string, attrs ...color.Attribute) string {
	if !useColor {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}
