package site

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// Validate checks the locale table, head tags and aliases. All problems are reported.
func (s *Site) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, errors.ValidationError(fmt.Sprintf(format, args...)).Build())
	}

	if !isPrefix(s.Base) {
		fail("site base %q must start and end with '/'", s.Base)
	}
	if len(s.Locales) == 0 {
		fail("at least one locale must be declared")
	} else if _, ok := s.Locales[RootLocale]; !ok {
		fail("root locale %q is not declared", RootLocale)
	}

	navbars := make(map[string]string, len(s.Locales))
	for _, key := range s.LocaleKeys() {
		loc := s.Locales[key]
		if !isPrefix(key) {
			fail("locale key %q must start and end with '/'", key)
		}
		if strings.TrimSpace(loc.Title) == "" {
			fail("locale %q has an empty title", key)
		}
		name, err := BaseLanguage(loc.Lang)
		if err != nil {
			fail("locale %q: %v", key, err)
			continue
		}
		if other, dup := navbars[name]; dup {
			fail("locales %q and %q both map to navbar %q", other, key, name)
		}
		navbars[name] = key
	}

	for i, h := range s.Head {
		if strings.TrimSpace(h.Tag) == "" {
			fail("head tag #%d has no tag name", i)
		}
	}
	for k, v := range s.Alias {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			fail("alias %q -> %q must have a non-empty key and target", k, v)
		}
	}
	return stderrors.Join(errs...)
}

func isPrefix(p string) bool {
	return strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/")
}
