// Package render turns the site configuration and navbars into the configuration
// document consumed by the static-site generator.
package render

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/navbar"
	"github.com/apache/tsfile-website/internal/search"
	"github.com/apache/tsfile-website/internal/site"
)

// Document is the generator configuration.
type Document struct {
	Base    string                 `json:"base" yaml:"base"`
	Locales map[string]site.Locale `json:"locales" yaml:"locales"`
	Theme   Theme                  `json:"theme" yaml:"theme"`
	Head    []site.HeadTag         `json:"head" yaml:"-"`
	Alias   map[string]string      `json:"alias,omitempty" yaml:"alias,omitempty"`
	Plugins []Plugin               `json:"plugins" yaml:"plugins"`
}

// Theme selects the theme and carries its per-locale navbars.
type Theme struct {
	Name    string                 `json:"name" yaml:"name"`
	Locales map[string]ThemeLocale `json:"locales" yaml:"locales"`
}

type ThemeLocale struct {
	Navbar navbar.Navbar `json:"navbar" yaml:"navbar"`
}

// Plugin is a generator plugin and its opaque options.
type Plugin struct {
	Name    string         `json:"name" yaml:"name"`
	Options map[string]any `json:"options" yaml:"options"`
}

// Plugin returns the named plugin, or false.
func (d *Document) Plugin(name string) (Plugin, bool) {
	for _, p := range d.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// Build assembles the document. navbars is keyed by locale and must cover every locale.
func Build(cfg *config.Config, navbars map[string]navbar.Navbar) (*Document, error) {
	// Phase 1: core site fields
	doc := &Document{
		Base:    cfg.Site.Base,
		Locales: cfg.Site.Locales,
		Theme:   Theme{Name: cfg.Site.Theme, Locales: map[string]ThemeLocale{}},
	}

	// Phase 2: navbars per locale
	for _, key := range cfg.Site.LocaleKeys() {
		nav, ok := navbars[key]
		if !ok {
			return nil, errors.RenderError(fmt.Sprintf("no navbar for locale %q", key)).WithContext("locale", key).Build()
		}
		doc.Theme.Locales[key] = ThemeLocale{Navbar: nav}
	}

	// Phase 3: head tags, analytics after the site's own
	doc.Head = append([]site.HeadTag{}, cfg.Site.Head...)
	tags, err := cfg.Analytics.HeadTags()
	if err != nil {
		return nil, errors.RenderError("failed to render analytics snippet").WithCause(err).Build()
	}
	doc.Head = append(doc.Head, tags...)

	// Phase 4: aliases
	if len(cfg.Site.Alias) > 0 {
		doc.Alias = cfg.Site.Alias
	}

	// Phase 5: plugins
	doc.Plugins = []Plugin{}
	if cfg.Search != nil {
		opts, err := optionRecord(cfg.Search)
		if err != nil {
			return nil, err
		}
		doc.Plugins = append(doc.Plugins, Plugin{Name: search.PluginName, Options: opts})
		slog.Debug("Added plugin", logfields.Plugin(search.PluginName))
	}
	if opts, ok := cfg.Analytics.PluginOptions(); ok {
		name := cfg.Analytics.PluginName()
		doc.Plugins = append(doc.Plugins, Plugin{Name: name, Options: opts})
		slog.Debug("Added plugin", logfields.Plugin(name))
	}
	return doc, nil
}

// optionRecord converts typed options into the generic record the generator gets,
// keeping the JSON field names in every output format.
func optionRecord(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.RenderError("failed to encode plugin options").WithCause(err).Build()
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.RenderError("failed to encode plugin options").WithCause(err).Build()
	}
	return out, nil
}
