// Package guard scans generated content for secrets before it is written
// into a tracked file.
package guard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// ErrSecretDetected reports generated content that matched a gitleaks rule.
var ErrSecretDetected = errors.New("secret detected in generated content")

// Finding is a single secret match.
type Finding struct {
	RuleID      string
	Description string
	Line        int // 1-based
}

// Scanner wraps a lazily built gitleaks detector. Safe for concurrent use.
type Scanner struct {
	once     sync.Once
	mu       sync.Mutex
	detector *detect.Detector
	initErr  error
}

// NewScanner returns a scanner using the default gitleaks rule set.
func NewScanner() *Scanner {
	return &Scanner{}
}

func (s *Scanner) init() {
	s.once.Do(func() {
		s.detector, s.initErr = detect.NewDetectorDefaultConfig()
	})
}

// Scan returns every secret found in content.
func (s *Scanner) Scan(content string) ([]Finding, error) {
	s.init()
	if s.initErr != nil {
		return nil, fmt.Errorf("initializing secret detector: %w", s.initErr)
	}

	// The detector accumulates findings internally; serialize access.
	s.mu.Lock()
	hits := s.detector.DetectString(content)
	s.mu.Unlock()

	findings := make([]Finding, 0, len(hits))
	for _, h := range hits {
		findings = append(findings, Finding{
			RuleID:      h.RuleID,
			Description: h.Description,
			Line:        h.StartLine + 1, // gitleaks is 0-indexed
		})
	}
	return findings, nil
}

// Check fails with ErrSecretDetected if content contains any secret.
// label names the content in the error.
func (s *Scanner) Check(label, content string) error {
	findings, err := s.Scan(content)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		return nil
	}

	parts := make([]string, 0, len(findings))
	for _, f := range findings {
		parts = append(parts, fmt.Sprintf("line %d: %s (%s)", f.Line, f.Description, f.RuleID))
	}
	return fmt.Errorf("%w for %s: %s", ErrSecretDetected, label, strings.Join(parts, "; "))
}
