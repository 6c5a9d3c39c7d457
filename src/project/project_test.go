package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestDetect_Cargo(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Cargo.toml": "[package]\nname = \"webhook-relay\"\nversion = \"0.3.1\"\n",
	})

	p, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "rust", p.Language)
	assert.Equal(t, "webhook-relay", p.Name)
	assert.Equal(t, "cargo run --quiet -- --help", p.HelpCommand())
}

func TestDetect_CargoMultipleBins(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Cargo.toml": `[package]
name = "relay"

[[bin]]
name = "relayctl"

[[bin]]
name = "relay"
`,
	})

	p, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "cargo run --quiet --bin relay -- --help", p.HelpCommand())
}

func TestDetect_CargoDefaultRun(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Cargo.toml": "[package]\nname = \"relay\"\ndefault-run = \"relayd\"\n\n[[bin]]\nname = \"relayd\"\n\n[[bin]]\nname = \"other\"\n",
	})

	p, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "cargo run --quiet -- --help", p.HelpCommand())
}

func TestDetect_InvalidCargo(t *testing.T) {
	dir := writeFiles(t, map[string]string{"Cargo.toml": "[package\n"})

	_, err := Detect(dir)
	assert.ErrorContains(t, err, "Cargo.toml")
}

func TestDetect_GoRootMain(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"go.mod":  "module github.com/acme/tool\n\ngo 1.25\n",
		"main.go": "package main\n",
	})

	p, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "go", p.Language)
	assert.Equal(t, "tool", p.Name)
	assert.Equal(t, "go run . --help", p.HelpCommand())
}

func TestDetect_GoCmdDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"go.mod":              "module github.com/acme/tool\n",
		"cmd/toolctl/main.go": "package main\n",
		"internal/lib/lib.go": "package lib\n",
	})

	p, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "go run ./cmd/toolctl --help", p.HelpCommand())
}

func TestDetect_GoCmdNamedAfterModule(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"go.mod":            "module github.com/acme/tool\n",
		"cmd/tool/main.go":  "package main\n",
		"cmd/other/main.go": "package main\n",
	})

	p, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "go run ./cmd/tool --help", p.HelpCommand())
}

func TestDetect_Unknown(t *testing.T) {
	_, err := Detect(t.TempDir())
	assert.ErrorIs(t, err, ErrUnknown)
}
