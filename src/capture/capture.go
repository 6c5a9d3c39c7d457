// Package capture runs an external command and collects its output.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
)

// ErrCommand reports a command that could not be started or exited non-zero.
var ErrCommand = errors.New("command failed")

const waitDelay = time.Second

// Result holds everything a finished command produced.
type Result struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// Output returns stdout with surrounding whitespace trimmed.
func (r *Result) Output() string {
	return strings.TrimSpace(r.Stdout)
}

// Runner executes command lines.
//
// A command line is split into argv with shell-style quoting rules and run
// directly. Set Shell to hand the whole line to /bin/sh instead, which is
// needed for pipes, redirects and variable expansion.
type Runner struct {
	Dir     string        // working directory; empty uses the current one
	Env     []string      // extra KEY=VALUE pairs appended to the environment
	Shell   bool          // run through sh -c
	Timeout time.Duration // zero waits for completion; on expiry the whole process group is killed
}

// Run executes command and waits for it. A non-zero exit still returns the
// Result alongside an error wrapping ErrCommand.
func (r Runner) Run(ctx context.Context, command string) (*Result, error) {
	argv, err := r.argv(command)
	if err != nil {
		return nil, err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	if r.Timeout > 0 {
		killGroup(cmd)
		// Stop waiting on pipes a surviving grandchild still holds.
		cmd.WaitDelay = waitDelay
	}
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	res := &Result{
		Command:  command,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Elapsed:  time.Since(start),
	}

	if runErr != nil {
		if ctx.Err() != nil {
			return res, fmt.Errorf("%w: %s: %w", ErrCommand, command, ctx.Err())
		}
		return res, commandError(command, runErr, res.Stderr)
	}
	return res, nil
}

func (r Runner) argv(command string) ([]string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, fmt.Errorf("%w: empty command", ErrCommand)
	}
	if r.Shell {
		return []string{"sh", "-c", command}, nil
	}

	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %w", ErrCommand, command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrCommand)
	}
	return argv, nil
}

// commandError folds the last stderr lines into the error so CI logs show
// why the command failed.
func commandError(command string, err error, stderr string) error {
	detail := lastLines(strings.TrimSpace(stderr), 5)
	if detail == "" {
		return fmt.Errorf("%w: %s: %w", ErrCommand, command, err)
	}
	return fmt.Errorf("%w: %s: %w\n%s", ErrCommand, command, err, detail)
}

func lastLines(s string, n int) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
