package config

import (
	"errors"
	"fmt"
)

// Validate checks structural invariants of a loaded Config and returns
// every problem found, joined.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency: must not be negative, got %d", cfg.Concurrency))
	}
	if len(cfg.Targets) == 0 {
		errs = append(errs, errors.New("targets: at least one target is required"))
	}

	for i, t := range cfg.Targets {
		tpath := fmt.Sprintf("targets[%d]", i)

		if t.Path == "" {
			errs = append(errs, fmt.Errorf("%s: path is required", tpath))
		}

		begin, end := t.Markers()
		if begin == end {
			errs = append(errs, fmt.Errorf("%s: begin and end markers must differ", tpath))
		}

		sources := 0
		for _, s := range []string{t.Command, t.Text, t.ContentFile} {
			if s != "" {
				sources++
			}
		}
		if sources > 1 {
			errs = append(errs, fmt.Errorf("%s: only one of command, text, content_file may be set", tpath))
		}
		if t.Shell && t.Command == "" {
			errs = append(errs, fmt.Errorf("%s: shell requires command", tpath))
		}

		if _, err := t.TimeoutDuration(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tpath, err))
		}
	}

	return errors.Join(errs...)
}
