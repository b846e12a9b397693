package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatomoHeadTag(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	tags, err := cfg.HeadTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "script", tags[0].Tag)
	assert.Equal(t, "text/javascript", tags[0].Attrs["type"])

	js := tags[0].Content
	assert.Contains(t, js, `_paq.push(["setDoNotTrack", true]);`)
	assert.Contains(t, js, `_paq.push(["disableCookies"]);`)
	assert.Contains(t, js, `var u="https://analytics.apache.org/";`)
	assert.Contains(t, js, `_paq.push(['setSiteId', '53']);`)
	assert.Less(t, indexOf(js, "disableCookies"), indexOf(js, "trackPageView"))

	_, ok := cfg.PluginOptions()
	assert.False(t, ok)
}

func TestMatomoOptionalCalls(t *testing.T) {
	js, err := RenderMatomo(MatomoConfig{TrackerURL: "https://stats.example.org/", SiteID: "7"})
	require.NoError(t, err)
	assert.NotContains(t, js, "setDoNotTrack")
	assert.NotContains(t, js, "disableCookies")
}

func TestGooglePlugin(t *testing.T) {
	cfg := Config{Provider: ProviderGoogle, Google: &GoogleConfig{MeasurementID: "G-TEST"}}
	require.NoError(t, cfg.Validate())

	opts, ok := cfg.PluginOptions()
	require.True(t, ok)
	assert.Equal(t, "G-TEST", opts["id"])

	tags, err := cfg.HeadTags()
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"missing matomo", Config{Provider: ProviderMatomo}, "matomo settings are required"},
		{"relative tracker", Config{Provider: ProviderMatomo, Matomo: &MatomoConfig{TrackerURL: "/m/", SiteID: "1"}}, "absolute"},
		{"tracker slash", Config{Provider: ProviderMatomo, Matomo: &MatomoConfig{TrackerURL: "https://a.org/m", SiteID: "1"}}, "end with '/'"},
		{"site id", Config{Provider: ProviderMatomo, Matomo: &MatomoConfig{TrackerURL: "https://a.org/", SiteID: "1'); x('"}}, "site_id"},
		{"google", Config{Provider: ProviderGoogle}, "measurement_id"},
		{"unknown", Config{Provider: "plausible"}, "unknown provider"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
	none := Config{Provider: ProviderNone}
	assert.NoError(t, none.Validate())
}

func TestNormalizeProvider(t *testing.T) {
	assert.Equal(t, ProviderMatomo, NormalizeProvider(" Matomo "))
	assert.Equal(t, ProviderGoogle, NormalizeProvider("GA"))
	assert.Equal(t, ProviderNone, NormalizeProvider(""))
	assert.Equal(t, Provider(""), NormalizeProvider("plausible"))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
