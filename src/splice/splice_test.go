package splice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSplice_ReplacesRegion(t *testing.T) {
	doc := "A\n<!--B-->\nold\n<!--E-->\nC"

	got, err := Splice(doc, Options{Content: "new", BeginMarker: "<!--B-->", EndMarker: "<!--E-->"})
	require.NoError(t, err)
	assert.Equal(t, "A\n<!--B-->\n```\nnew\n```\n<!--E-->\nC", got)
}

func TestSplice_LanguageTag(t *testing.T) {
	doc := "<!--B--><!--E-->"

	got, err := Splice(doc, Options{Content: "fmt.Println()", BeginMarker: "<!--B-->", EndMarker: "<!--E-->", Lang: "go"})
	require.NoError(t, err)
	assert.Equal(t, "<!--B-->\n```go\nfmt.Println()\n```\n<!--E-->", got)
}

func TestSplice_RegionIsExactlyFencedBlock(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		content string
		lang    string
	}{
		{"empty region", "x<!--B--><!--E-->y", "hello", ""},
		{"multiline content", "head\n<!--B-->\nstale\nstale\n<!--E-->\ntail\n", "line1\nline2", "text"},
		{"markers at edges", "<!--B-->\n<!--E-->", "only", "sh"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Splice(tc.doc, Options{Content: tc.content, BeginMarker: "<!--B-->", EndMarker: "<!--E-->", Lang: tc.lang})
			require.NoError(t, err)

			region, ok := Between(got, "<!--B-->", "<!--E-->")
			require.True(t, ok)
			assert.Equal(t, "\n"+Fence(tc.lang, tc.content)+"\n", region)

			// Text outside the markers survives untouched.
			assert.True(t, strings.HasPrefix(got, tc.doc[:strings.Index(tc.doc, "<!--B-->")]))
			assert.True(t, strings.HasSuffix(got, tc.doc[strings.Index(tc.doc, "<!--E-->"):]))
		})
	}
}

func TestSplice_Idempotent(t *testing.T) {
	opts := Options{Content: "Usage: tool [OPTIONS]", BeginMarker: "<!-- BEGIN_CLI_HELP -->", EndMarker: "<!-- END_CLI_HELP -->"}
	doc := "# tool\n\n<!-- BEGIN_CLI_HELP -->\nwhatever was here\n<!-- END_CLI_HELP -->\n\nmore docs\n"

	once, err := Splice(doc, opts)
	require.NoError(t, err)
	twice, err := Splice(once, opts)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSplice_MissingMarkers(t *testing.T) {
	cases := map[string]string{
		"missing begin": "A\nold\n<!--E-->\n",
		"missing end":   "A\n<!--B-->\nold\n",
		"missing both":  "A\nold\n",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Splice(doc, Options{Content: "new", BeginMarker: "<!--B-->", EndMarker: "<!--E-->"})
			assert.ErrorIs(t, err, ErrMarkersNotFound)
			assert.Equal(t, doc, got)
		})
	}
}

func TestSplice_EndBeforeBegin(t *testing.T) {
	doc := "<!--E-->\nmiddle\n<!--B-->\n"

	got, err := Splice(doc, Options{Content: "new", BeginMarker: "<!--B-->", EndMarker: "<!--E-->"})
	assert.ErrorIs(t, err, ErrMarkerOrder)
	assert.Equal(t, doc, got)
}

func TestSplice_IdenticalMarkersRejected(t *testing.T) {
	_, err := Splice("<!--X-->\n<!--X-->", Options{Content: "new", BeginMarker: "<!--X-->", EndMarker: "<!--X-->"})
	assert.ErrorIs(t, err, ErrMarkerOrder)
}

func TestOptions_Validate(t *testing.T) {
	cases := map[string]Options{
		"empty content": {BeginMarker: "b", EndMarker: "e"},
		"empty begin":   {Content: "x", EndMarker: "e"},
		"empty end":     {Content: "x", BeginMarker: "b"},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, opts.Validate(), ErrConfig)
		})
	}

	assert.NoError(t, Options{Content: "x", BeginMarker: "b", EndMarker: "e"}.Validate())
}

func TestReplace_WritesFile(t *testing.T) {
	path := writeTempFile(t, "README.md", "A\n<!--B-->\nold\n<!--E-->\nC")

	change, err := Replace(path, Options{Content: "new", BeginMarker: "<!--B-->", EndMarker: "<!--E-->"})
	require.NoError(t, err)

	assert.True(t, change.Changed())
	assert.Equal(t, "A\n<!--B-->\n```\nnew\n```\n<!--E-->\nC", readFile(t, path))
}

func TestReplace_SecondRunUnchanged(t *testing.T) {
	path := writeTempFile(t, "README.md", "<!--B-->\n<!--E-->\n")
	opts := Options{Content: "same", BeginMarker: "<!--B-->", EndMarker: "<!--E-->"}

	_, err := Replace(path, opts)
	require.NoError(t, err)
	first := readFile(t, path)

	change, err := Replace(path, opts)
	require.NoError(t, err)
	assert.False(t, change.Changed())
	assert.Equal(t, first, readFile(t, path))
}

func TestReplace_MissingMarkersLeavesFileUntouched(t *testing.T) {
	original := "no markers here\n"
	path := writeTempFile(t, "README.md", original)

	_, err := Replace(path, Options{Content: "new", BeginMarker: "<!--B-->", EndMarker: "<!--E-->"})
	require.ErrorIs(t, err, ErrMarkersNotFound)
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, original, readFile(t, path))
}

func TestReplace_EmptyContentSkipsFileAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.md")

	_, err := Replace(path, Options{BeginMarker: "<!--B-->", EndMarker: "<!--E-->"})
	require.ErrorIs(t, err, ErrConfig)
	assert.NotErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestReplace_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")

	_, err := Replace(path, Options{Content: "x", BeginMarker: "b", EndMarker: "e"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSectionMarkers(t *testing.T) {
	assert.Equal(t, "<!-- BEGIN_CLI_HELP -->", SectionBegin("cli-help"))
	assert.Equal(t, "<!-- END_CLI_HELP -->", SectionEnd("cli-help"))
	assert.Equal(t, "<!-- BEGIN_API_V2_USAGE -->", SectionBegin(" api.v2 usage "))
	assert.Equal(t, "<!-- BEGIN_X -->\n<!-- END_X -->", WrapSection("x"))
}
