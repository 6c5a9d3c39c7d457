// Package project inspects a repository's manifests to find out how to
// print the CLI's help text.
package project

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// ErrUnknown reports a directory with no recognised manifest.
var ErrUnknown = errors.New("no recognised project manifest")

// Project holds what was detected about a repository.
type Project struct {
	Language string // "rust", "go"
	Name     string // crate name or last module path element
	Manifest string // manifest file name
	Binary   string // binary to run when it differs from the default
	MainDir  string // go: package directory of the main binary, relative
}

// HelpCommand returns the command line that prints the project's help.
func (p *Project) HelpCommand() string {
	switch p.Language {
	case "rust":
		if p.Binary != "" {
			return "cargo run --quiet --bin " + p.Binary + " -- --help"
		}
		return "cargo run --quiet -- --help"
	case "go":
		dir := p.MainDir
		if dir == "" {
			dir = "."
		}
		return "go run " + dir + " --help"
	}
	return ""
}

// Detect inspects rootDir. Rust is checked before Go so mixed repos
// with a Cargo workspace and Go tooling pick the crate.
func Detect(rootDir string) (*Project, error) {
	if p, err := detectCargo(rootDir); err != nil || p != nil {
		return p, err
	}
	if p, err := detectGoMod(rootDir); err != nil || p != nil {
		return p, err
	}
	return nil, fmt.Errorf("%w in %s", ErrUnknown, rootDir)
}

type cargoManifest struct {
	Package struct {
		Name       string `toml:"name"`
		DefaultRun string `toml:"default-run"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
}

func detectCargo(rootDir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, "Cargo.toml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing Cargo.toml: %w", err)
	}

	p := &Project{Language: "rust", Name: m.Package.Name, Manifest: "Cargo.toml"}

	// cargo run refuses to guess between several binaries.
	switch {
	case m.Package.DefaultRun != "":
	case len(m.Bin) > 1:
		p.Binary = m.Bin[0].Name
		for _, b := range m.Bin {
			if b.Name == m.Package.Name {
				p.Binary = b.Name
			}
		}
	}
	return p, nil
}

func detectGoMod(rootDir string) (*Project, error) {
	f, err := os.Open(filepath.Join(rootDir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	p := &Project{Language: "go", Manifest: "go.mod"}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if mod, ok := strings.CutPrefix(line, "module "); ok {
			mod = strings.Trim(strings.TrimSpace(mod), `"`)
			p.Name = mod[strings.LastIndex(mod, "/")+1:]
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading go.mod: %w", err)
	}

	p.MainDir = goMainDir(rootDir, p.Name)
	return p, nil
}

// goMainDir finds the main package: the root if it has main.go, else
// cmd/<name>, else the only directory under cmd/.
func goMainDir(rootDir, name string) string {
	if fileExists(filepath.Join(rootDir, "main.go")) {
		return "."
	}
	if name != "" && fileExists(filepath.Join(rootDir, "cmd", name, "main.go")) {
		return "./cmd/" + name
	}

	entries, err := os.ReadDir(filepath.Join(rootDir, "cmd"))
	if err != nil {
		return "."
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && fileExists(filepath.Join(rootDir, "cmd", e.Name(), "main.go")) {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 1 {
		return "./cmd/" + dirs[0]
	}
	return "."
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
