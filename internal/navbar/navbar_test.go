package navbar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

func TestDefaultNavbarsAreValid(t *testing.T) {
	for name, nav := range Defaults() {
		assert.NoError(t, nav.Validate(), name)
	}
}

func TestValidate(t *testing.T) {
	nav := Navbar{
		{Text: "Docs", Link: "/docs/"},
		{Text: "Group", Children: []Entry{
			{Text: "", Link: "/a"},
			{Text: "Empty"},
			{Text: "Nested", Children: []Entry{{Text: "Leaf", Link: "/leaf", Target: "_window"}}},
		}},
		{Text: "Orphan"},
	}
	err := nav.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, `navbar[1] "Group".children[0]: entry text is empty`)
	assert.Contains(t, msg, `navbar[1] "Group".children[1] "Empty": entry needs a link or children`)
	assert.Contains(t, msg, `unsupported target "_window"`)
	assert.Contains(t, msg, `navbar[2] "Orphan": entry needs a link or children`)
	assert.NotContains(t, msg, `"Docs"`)
}

func TestLinks(t *testing.T) {
	links := Chinese().Links()
	assert.Equal(t, "/zh/UserGuide/latest/QuickStart/QuickStart", links[0])
	assert.Contains(t, links, "/zh/Development/Powered-By")
	assert.Len(t, links, 11)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "navbar")
	require.NoError(t, Save(dir, "en", English()))
	assert.True(t, Exists(dir, "en"))
	assert.False(t, Exists(dir, "zh"))

	got, err := Load(dir, "en")
	require.NoError(t, err)
	assert.Equal(t, English(), got)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir, "missing")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	require.NoError(t, os.WriteFile(Path(dir, "typo"), []byte("- text: Docs\n  lnk: /docs/\n"), 0o600))
	_, err = Load(dir, "typo")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
