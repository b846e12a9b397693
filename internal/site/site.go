// Package site models the site-level metadata handed to the static-site generator:
// the locale table, theme selection, head tags and path aliases.
package site

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// RootLocale is the path prefix of the default locale.
const RootLocale = "/"

// Locale describes one language variant of the site, keyed by its URL path prefix.
type Locale struct {
	Lang        string `yaml:"lang" json:"lang"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// HeadTag is an element injected into every page's <head>.
type HeadTag struct {
	Tag     string            `yaml:"tag"`
	Attrs   map[string]string `yaml:"attrs,omitempty"`
	Content string            `yaml:"content,omitempty"`
}

// Tuple returns the generator's [tag, attrs, content?] representation.
func (h HeadTag) Tuple() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	if h.Content == "" {
		return []any{h.Tag, attrs}
	}
	return []any{h.Tag, attrs, h.Content}
}

// MarshalJSON encodes the tag as a tuple.
func (h HeadTag) MarshalJSON() ([]byte, error) { return json.Marshal(h.Tuple()) }

// Site is the top-level site definition.
type Site struct {
	Base    string            `yaml:"base"`
	Theme   string            `yaml:"theme"`
	Locales map[string]Locale `yaml:"locales"`
	Head    []HeadTag         `yaml:"head,omitempty"`
	Alias   map[string]string `yaml:"alias,omitempty"`
}

// LocaleKeys returns the locale path prefixes with the root locale first, the rest sorted.
func (s *Site) LocaleKeys() []string {
	keys := make([]string, 0, len(s.Locales))
	for k := range s.Locales {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == RootLocale:
			return -1
		case b == RootLocale:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
	return keys
}

// NavbarName returns the navbar file name for a locale: the base language of its tag.
func (s *Site) NavbarName(key string) (string, error) {
	loc, ok := s.Locales[key]
	if !ok {
		return "", fmt.Errorf("unknown locale %q", key)
	}
	return BaseLanguage(loc.Lang)
}

// BaseLanguage reduces a BCP-47 tag to its base language subtag ("zh-CN" -> "zh").
func BaseLanguage(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", lang, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}
