// Package readme regenerates the CLI help block of a README.
//
// The updater runs the project's help command, and splices its trimmed
// output between the CLI help markers as an untagged fenced block.
package readme

import (
	"context"
	"errors"
	"time"

	"github.com/sofmeright/mdsplice/src/capture"
	"github.com/sofmeright/mdsplice/src/splice"
)

const (
	DefaultFile        = "README.md"
	DefaultBeginMarker = "<!-- BEGIN_CLI_HELP -->"
	DefaultEndMarker   = "<!-- END_CLI_HELP -->"
	DefaultCommand     = "cargo run --quiet -- --help"
)

// ErrEmptyOutput reports a help command that printed nothing but whitespace.
var ErrEmptyOutput = errors.New("failed to generate help output")

// Config is the fixed description of one README update. It is passed by
// value and never mutated after construction.
type Config struct {
	File        string
	BeginMarker string
	EndMarker   string
	Command     string
	Lang        string // fence info string; empty for plain help text
	Dir         string // working directory for Command
	Shell       bool
	Timeout     time.Duration
}

// DefaultConfig returns the standard README / CLI help configuration.
func DefaultConfig() Config {
	return Config{
		File:        DefaultFile,
		BeginMarker: DefaultBeginMarker,
		EndMarker:   DefaultEndMarker,
		Command:     DefaultCommand,
	}
}

// CommandRunner runs a command line and captures its output.
type CommandRunner interface {
	Run(ctx context.Context, command string) (*capture.Result, error)
}

// Updater regenerates a README help block.
type Updater struct {
	cfg    Config
	runner CommandRunner
}

// Option customizes an Updater.
type Option func(*Updater)

// WithRunner replaces the command runner.
func WithRunner(r CommandRunner) Option {
	return func(u *Updater) { u.runner = r }
}

// New returns an Updater for cfg.
func New(cfg Config, opts ...Option) *Updater {
	u := &Updater{
		cfg:    cfg,
		runner: capture.Runner{Dir: cfg.Dir, Shell: cfg.Shell, Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Config returns the updater's configuration.
func (u *Updater) Config() Config {
	return u.cfg
}

// Generate runs the help command and returns its trimmed output.
func (u *Updater) Generate(ctx context.Context) (string, error) {
	res, err := u.runner.Run(ctx, u.cfg.Command)
	if err != nil {
		return "", err
	}
	out := res.Output()
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

// Plan generates the help text and computes the new file content without
// writing. The command runs before the target file is read.
func (u *Updater) Plan(ctx context.Context) (splice.Change, error) {
	help, err := u.Generate(ctx)
	if err != nil {
		return splice.Change{}, err
	}
	return splice.Plan(u.cfg.File, u.options(help))
}

// Update regenerates the help block and writes the file. Nothing is written
// unless every step before the write succeeded.
func (u *Updater) Update(ctx context.Context) (splice.Change, error) {
	change, err := u.Plan(ctx)
	if err != nil {
		return splice.Change{}, err
	}
	if !change.Changed() {
		return change, nil
	}
	if err := change.Write(); err != nil {
		return splice.Change{}, err
	}
	return change, nil
}

func (u *Updater) options(content string) splice.Options {
	return splice.Options{
		Content:     content,
		BeginMarker: u.cfg.BeginMarker,
		EndMarker:   u.cfg.EndMarker,
		Lang:        u.cfg.Lang,
	}
}
