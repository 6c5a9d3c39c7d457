// Package pipeline applies configured targets to their files.
//
// Targets are grouped by file. Files are processed concurrently; the
// targets of one file are applied in config order onto a single in-memory
// document, which is written at most once. A file is written only if every
// one of its targets succeeded.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sofmeright/mdsplice/src/config"
	"github.com/sofmeright/mdsplice/src/gitroot"
	"github.com/sofmeright/mdsplice/src/guard"
	"github.com/sofmeright/mdsplice/src/output"
	"github.com/sofmeright/mdsplice/src/project"
	"github.com/sofmeright/mdsplice/src/readme"
	"github.com/sofmeright/mdsplice/src/splice"
)

// ErrDrift reports files whose managed regions are out of date in check mode.
var ErrDrift = errors.New("generated content is out of date")

// Options controls a pipeline run.
type Options struct {
	RootDir     string // relative target paths resolve against this
	Check       bool   // compute only; report files that would change
	DryRun      bool   // compute only
	ScanSecrets bool
	Concurrency int

	// Runner overrides the command runner for every command target.
	Runner readme.CommandRunner
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string // as configured
	Targets []config.Target
	Change  splice.Change
	Status  string
	Dirty   bool // had uncommitted changes before being overwritten
	Err     error
	Elapsed time.Duration
}

// Pipeline runs targets.
type Pipeline struct {
	opts    Options
	scanner *guard.Scanner

	detectOnce sync.Once
	detected   *project.Project
	detectErr  error
}

// New returns a pipeline for opts.
func New(opts Options) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	p := &Pipeline{opts: opts}
	if opts.ScanSecrets {
		p.scanner = guard.NewScanner()
	}
	return p
}

// Run applies targets and returns one result per file, in first-seen order.
// The returned error joins every file failure, plus ErrDrift in check mode.
func (p *Pipeline) Run(ctx context.Context, targets []config.Target) ([]FileResult, error) {
	results := group(targets)
	dirty := p.dirtyFiles(results)

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)
	for i := range results {
		res := &results[i]
		g.Go(func() error {
			start := time.Now()
			p.processFile(ctx, res)
			res.Elapsed = time.Since(start)
			if res.Status == output.StatusUpdated {
				res.Dirty = dirty[res.Path]
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	drift := false
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
		if res.Status == output.StatusDrift {
			drift = true
		}
	}
	if drift {
		errs = append(errs, ErrDrift)
	}
	return results, errors.Join(errs...)
}

func group(targets []config.Target) []FileResult {
	var results []FileResult
	index := make(map[string]int)
	for _, t := range targets {
		key := filepath.Clean(t.Path)
		i, ok := index[key]
		if !ok {
			i = len(results)
			index[key] = i
			results = append(results, FileResult{Path: t.Path})
		}
		results[i].Targets = append(results[i].Targets, t)
	}
	return results
}

func (p *Pipeline) resolve(path string) string {
	if filepath.IsAbs(path) || p.opts.RootDir == "" {
		return path
	}
	return filepath.Join(p.opts.RootDir, path)
}

// dirtyFiles collects files with uncommitted changes before any goroutine
// runs, so git status is never read concurrently.
func (p *Pipeline) dirtyFiles(results []FileResult) map[string]bool {
	dirty := make(map[string]bool)
	if p.opts.Check || p.opts.DryRun || p.opts.RootDir == "" {
		return dirty
	}
	repo, err := gitroot.Open(p.opts.RootDir)
	if err != nil {
		return dirty
	}
	for _, res := range results {
		if d, err := repo.Dirty(p.resolve(res.Path)); err == nil && d {
			dirty[res.Path] = true
		}
	}
	return dirty
}

func (p *Pipeline) processFile(ctx context.Context, res *FileResult) {
	path := p.resolve(res.Path)

	// Generate everything before touching the target file.
	contents := make([]string, len(res.Targets))
	for i, t := range res.Targets {
		text, err := p.content(ctx, t, path)
		if err != nil {
			p.fail(res, fmt.Errorf("%s: %w", t.Describe(), err))
			return
		}
		if p.scanner != nil {
			if err := p.scanner.Check(t.Describe(), text); err != nil {
				p.fail(res, err)
				return
			}
		}
		contents[i] = text
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		p.fail(res, fmt.Errorf("reading %s: %w", res.Path, err))
		return
	}
	doc := string(raw)
	updated := doc

	for i, t := range res.Targets {
		begin, end := t.Markers()
		updated, err = splice.Splice(updated, splice.Options{
			Content:     contents[i],
			BeginMarker: begin,
			EndMarker:   end,
			Lang:        t.Lang,
		})
		if err != nil {
			p.fail(res, fmt.Errorf("%s: %w in %s", t.Describe(), err, res.Path))
			return
		}
	}

	res.Change = splice.Change{Path: path, Before: doc, After: updated}

	switch {
	case !res.Change.Changed():
		res.Status = output.StatusUnchanged
	case p.opts.Check:
		res.Status = output.StatusDrift
	case p.opts.DryRun:
		res.Status = output.StatusUpdated
	default:
		if err := res.Change.Write(); err != nil {
			p.fail(res, err)
			return
		}
		res.Status = output.StatusUpdated
	}
}

func (p *Pipeline) fail(res *FileResult, err error) {
	res.Status = output.StatusFailed
	res.Err = err
}

// content produces the text for one target.
func (p *Pipeline) content(ctx context.Context, t config.Target, path string) (string, error) {
	switch t.SourceKind() {
	case config.SourceText:
		return t.Text, nil
	case config.SourceFile:
		data, err := os.ReadFile(p.resolve(t.ContentFile))
		if err != nil {
			return "", fmt.Errorf("reading content file: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}

	command := t.Command
	if command == "" {
		proj, err := p.detect()
		if err != nil {
			return "", fmt.Errorf("no command configured and %w", err)
		}
		command = proj.HelpCommand()
	}

	timeout, err := t.TimeoutDuration()
	if err != nil {
		return "", err
	}

	begin, end := t.Markers()
	cfg := readme.Config{
		File:        path,
		BeginMarker: begin,
		EndMarker:   end,
		Command:     command,
		Lang:        t.Lang,
		Dir:         p.opts.RootDir,
		Shell:       t.Shell,
		Timeout:     timeout,
	}

	var opts []readme.Option
	if p.opts.Runner != nil {
		opts = append(opts, readme.WithRunner(p.opts.Runner))
	}
	return readme.New(cfg, opts...).Generate(ctx)
}

func (p *Pipeline) detect() (*project.Project, error) {
	p.detectOnce.Do(func() {
		root := p.opts.RootDir
		if root == "" {
			root = "."
		}
		p.detected, p.detectErr = project.Detect(root)
	})
	return p.detected, p.detectErr
}
