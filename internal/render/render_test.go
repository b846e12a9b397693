package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/apache/tsfile-website/internal/analytics"
	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/navbar"
	"github.com/apache/tsfile-website/internal/search"
	"github.com/apache/tsfile-website/internal/site"
)

func defaultNavbars() map[string]navbar.Navbar {
	return map[string]navbar.Navbar{"/": navbar.English(), "/zh/": navbar.Chinese()}
}

func TestBuildDefaultDocument(t *testing.T) {
	cfg := config.Example()
	doc, err := Build(&cfg, defaultNavbars())
	require.NoError(t, err)

	assert.Equal(t, "/", doc.Base)
	assert.Equal(t, "vuepress-theme-hope", doc.Theme.Name)
	assert.Equal(t, "en-US", doc.Locales["/"].Lang)
	assert.Equal(t, "zh-CN", doc.Locales["/zh/"].Lang)
	assert.Equal(t, navbar.English(), doc.Theme.Locales["/"].Navbar)
	assert.Equal(t, navbar.Chinese(), doc.Theme.Locales["/zh/"].Navbar)

	require.Len(t, doc.Head, 2)
	assert.Equal(t, "link", doc.Head[0].Tag)
	assert.Equal(t, "script", doc.Head[1].Tag)
	assert.Contains(t, doc.Head[1].Content, "https://analytics.apache.org/")

	require.Len(t, doc.Plugins, 1)
	ds, ok := doc.Plugin(search.PluginName)
	require.True(t, ok)
	assert.Equal(t, "JLT9R2YGAE", ds.Options["appId"])
	assert.Equal(t, "iotdb-apache_tsfile", ds.Options["indexName"])
	locales, ok := ds.Options["locales"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, locales, "/zh/")
}

func TestBuildWithGoogleAnalytics(t *testing.T) {
	cfg := config.Example()
	cfg.Search = nil
	cfg.Analytics = analytics.Config{Provider: analytics.ProviderGoogle, Google: &analytics.GoogleConfig{MeasurementID: "G-TEST"}}

	doc, err := Build(&cfg, defaultNavbars())
	require.NoError(t, err)
	require.Len(t, doc.Head, 1, "google analytics adds no head script")
	require.Len(t, doc.Plugins, 1)
	assert.Equal(t, analytics.GooglePluginName, doc.Plugins[0].Name)
	assert.Equal(t, "G-TEST", doc.Plugins[0].Options["id"])
}

func TestBuildMissingNavbar(t *testing.T) {
	cfg := config.Example()
	_, err := Build(&cfg, map[string]navbar.Navbar{"/": navbar.English()})
	require.Error(t, err)
	assert.Equal(t, errors.CategoryRender, errors.GetCategory(err))
	assert.Contains(t, err.Error(), `"/zh/"`)
}

func TestEncodeJSON(t *testing.T) {
	cfg := config.Example()
	doc, err := Build(&cfg, defaultNavbars())
	require.NoError(t, err)

	data, err := Encode(doc, config.RenderFormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	head, ok := decoded["head"].([]any)
	require.True(t, ok)
	first, ok := head[0].([]any)
	require.True(t, ok)
	assert.Equal(t, "link", first[0])
	assert.Equal(t, map[string]any{"rel": "icon", "href": "/favicon.ico"}, first[1])
	assert.Contains(t, string(data), "matomo.php")
}

func TestEncodeYAMLKeepsWidgetKeys(t *testing.T) {
	cfg := config.Example()
	doc, err := Build(&cfg, defaultNavbars())
	require.NoError(t, err)

	data, err := Encode(doc, config.RenderFormatYAML)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "head")
	assert.Contains(t, string(data), "appId: JLT9R2YGAE")
	assert.NotContains(t, string(data), "app_id")
}

func TestEncodeEmptyHeadAsArray(t *testing.T) {
	cfg := config.Example()
	cfg.Site.Head = nil
	cfg.Analytics = analytics.Config{Provider: analytics.ProviderNone}

	doc, err := Build(&cfg, defaultNavbars())
	require.NoError(t, err)
	data, err := Encode(doc, config.RenderFormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["head"])
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(&Document{}, config.RenderFormat("toml"))
	require.Error(t, err)
}

func TestRenderHead(t *testing.T) {
	out, err := RenderHead([]site.HeadTag{
		{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
		{Tag: "script", Attrs: map[string]string{"type": "text/javascript"}, Content: "var a = 1 < 2 && true;"},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `<link href="/favicon.ico" rel="icon"/>`, lines[0])
	assert.Equal(t, `<script type="text/javascript">var a = 1 < 2 && true;</script>`, lines[1])

	_, err = RenderHead([]site.HeadTag{{Tag: " "}})
	require.Error(t, err)
}

func TestRenderFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFileName)
	require.NoError(t, config.Init(path, false))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	out, err := Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, filepath.FromSlash(config.DefaultOutputDir), "site.config.json"), out.ConfigPath)

	data, err := os.ReadFile(out.ConfigPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "/", doc["base"])

	head, err := os.ReadFile(out.HeadPath)
	require.NoError(t, err)
	assert.Contains(t, string(head), "matomo.php")
}

func TestRenderFailsWithoutNavbar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFileName)
	require.NoError(t, config.Init(path, false))
	require.NoError(t, os.Remove(navbar.Path(filepath.Join(dir, config.DefaultNavbarDir), "zh")))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	_, err = Render(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no navbar file")
}
