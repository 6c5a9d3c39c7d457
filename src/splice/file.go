package splice

import (
	"errors"
	"fmt"
	"os"
)

// Change is the result of splicing a file in memory.
type Change struct {
	Path   string
	Before string
	After  string
}

// Changed reports whether writing the change would alter the file.
func (c Change) Changed() bool {
	return c.Before != c.After
}

// Write stores After at Path in a single call.
func (c Change) Write() error {
	if err := os.WriteFile(c.Path, []byte(c.After), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", c.Path, err)
	}
	return nil
}

// Plan reads path and computes the splice without writing anything.
// Options are validated before the file is opened.
func Plan(path string, opts Options) (Change, error) {
	if err := opts.Validate(); err != nil {
		return Change{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Change{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc := string(raw)

	updated, err := Splice(doc, opts)
	if err != nil {
		return Change{}, markerError(path, err)
	}
	return Change{Path: path, Before: doc, After: updated}, nil
}

// Replace splices the file at path in place. The new content is fully built
// before the write, so on any error the file is left as it was.
func Replace(path string, opts Options) (Change, error) {
	change, err := Plan(path, opts)
	if err != nil {
		return Change{}, err
	}
	if err := change.Write(); err != nil {
		return Change{}, err
	}
	return change, nil
}

// markerError attaches the file path to marker lookup failures.
func markerError(path string, err error) error {
	switch {
	case errors.Is(err, ErrMarkersNotFound):
		return fmt.Errorf("%w in %s", ErrMarkersNotFound, path)
	case errors.Is(err, ErrMarkerOrder):
		return fmt.Errorf("%w in %s", ErrMarkerOrder, path)
	}
	return err
}
