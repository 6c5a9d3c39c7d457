package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are tried in order when no config path is given.
var DefaultFiles = []string{".mdsplice.yml", ".mdsplice.yaml", ".mdsplice.toml"}

// Config is the top-level mdsplice configuration.
type Config struct {
	Targets     []Target `yaml:"targets" toml:"targets"`
	ScanSecrets bool     `yaml:"scan_secrets" toml:"scan_secrets"` // run generated content through gitleaks before writing
	Concurrency int      `yaml:"concurrency" toml:"concurrency"`   // max files processed at once

	// Source is the file the config was read from; empty for defaults.
	Source string `yaml:"-" toml:"-"`
}

// Load reads configuration from a YAML or TOML file, chosen by extension.
// If path is empty, the default files are tried in order inside dir.
// Returns defaults if none exist.
func Load(dir, path string) (*Config, error) {
	if path == "" {
		for _, name := range DefaultFiles {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Defaults(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, err
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes data in the given format ("yaml" or "toml").
// Files without targets get the default target.
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{Concurrency: defaultConcurrency}

	switch format {
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if len(cfg.Targets) == 0 {
		cfg.Targets = []Target{DefaultTarget()}
	}
	return cfg, nil
}

const defaultConcurrency = 4

// Defaults returns the configuration used when no config file exists:
// regenerate the CLI help block in README.md.
func Defaults() *Config {
	return &Config{
		Targets:     []Target{DefaultTarget()},
		Concurrency: defaultConcurrency,
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}
