// Package analytics turns the tracking settings into either an inline head script
// (Matomo) or a plugin option record (Google Analytics).
package analytics

import (
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/foundation/normalization"
	"github.com/apache/tsfile-website/internal/site"
)

// Provider selects the analytics integration.
type Provider string

const (
	ProviderNone   Provider = "none"
	ProviderMatomo Provider = "matomo"
	ProviderGoogle Provider = "google"
)

// GooglePluginName is the generator plugin that receives the measurement id.
const GooglePluginName = "google-analytics"

var providerNormalizer = normalization.NewNormalizer(map[string]Provider{
	"none":             ProviderNone,
	"":                 ProviderNone,
	"matomo":           ProviderMatomo,
	"google":           ProviderGoogle,
	"google-analytics": ProviderGoogle,
	"ga":               ProviderGoogle,
}, "")

// NormalizeProvider canonicalizes a provider name; unknown names yield "".
func NormalizeProvider(raw string) Provider { return providerNormalizer.Normalize(raw) }

// Config holds the analytics settings.
type Config struct {
	Provider Provider      `yaml:"provider"`
	Matomo   *MatomoConfig `yaml:"matomo,omitempty"`
	Google   *GoogleConfig `yaml:"google,omitempty"`
}

// MatomoConfig parameterizes the Matomo bootstrap snippet.
type MatomoConfig struct {
	TrackerURL     string `yaml:"tracker_url"`
	SiteID         string `yaml:"site_id"`
	DoNotTrack     bool   `yaml:"do_not_track"`
	DisableCookies bool   `yaml:"disable_cookies"`
}

type GoogleConfig struct {
	MeasurementID string `yaml:"measurement_id"`
}

// Default returns the Apache Matomo instance used by the TsFile site.
func Default() Config {
	return Config{
		Provider: ProviderMatomo,
		Matomo: &MatomoConfig{
			TrackerURL:     "https://analytics.apache.org/",
			SiteID:         "53",
			DoNotTrack:     true,
			DisableCookies: true,
		},
	}
}

// Validate checks the fields required by the selected provider.
func (c *Config) Validate() error {
	var errs []error
	fail := func(msg string) { errs = append(errs, errors.ValidationError("analytics: "+msg).Build()) }

	switch c.Provider {
	case ProviderNone:
	case ProviderMatomo:
		if c.Matomo == nil {
			fail("matomo settings are required for provider matomo")
			break
		}
		u, err := url.Parse(c.Matomo.TrackerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			fail("matomo tracker_url must be an absolute http(s) URL")
		} else if !strings.HasSuffix(u.Path, "/") {
			fail("matomo tracker_url must end with '/'")
		}
		if c.Matomo.SiteID == "" || strings.Trim(c.Matomo.SiteID, "0123456789") != "" {
			fail("matomo site_id must be a non-empty number")
		}
	case ProviderGoogle:
		if c.Google == nil || strings.TrimSpace(c.Google.MeasurementID) == "" {
			fail("google measurement_id must not be empty")
		}
	default:
		fail("unknown provider " + string(c.Provider))
	}
	return stderrors.Join(errs...)
}

// HeadTags returns the tags to inject into every page head.
func (c *Config) HeadTags() ([]site.HeadTag, error) {
	if c.Provider != ProviderMatomo || c.Matomo == nil {
		return nil, nil
	}
	snippet, err := RenderMatomo(*c.Matomo)
	if err != nil {
		return nil, err
	}
	return []site.HeadTag{{
		Tag:     "script",
		Attrs:   map[string]string{"type": "text/javascript"},
		Content: snippet,
	}}, nil
}

// PluginName is the generator plugin fed by PluginOptions.
func (c *Config) PluginName() string {
	if c.Provider == ProviderGoogle {
		return GooglePluginName
	}
	return ""
}

// PluginOptions returns the analytics plugin record, if the provider uses one.
func (c *Config) PluginOptions() (map[string]any, bool) {
	if c.Provider != ProviderGoogle || c.Google == nil {
		return nil, false
	}
	return map[string]any{"id": c.Google.MeasurementID}, true
}
