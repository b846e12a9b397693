package config

import (
	stderrors "errors"
	"fmt"

	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/navbar"
)

// LoadNavbars loads and validates the navbar of every locale, keyed by locale path
// prefix. A locale without a navbar file is an error.
func LoadNavbars(cfg *Config) (map[string]navbar.Navbar, error) {
	out := make(map[string]navbar.Navbar, len(cfg.Site.Locales))
	var errs []error
	for _, key := range cfg.Site.LocaleKeys() {
		name, err := cfg.Site.NavbarName(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !navbar.Exists(cfg.Navbar.Dir, name) {
			errs = append(errs, errors.ValidationError(fmt.Sprintf("locale %q has no navbar file %s", key, navbar.Path(cfg.Navbar.Dir, name))).Build())
			continue
		}
		nav, err := navbar.Load(cfg.Navbar.Dir, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := nav.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("navbar %s: %w", name, err))
			continue
		}
		out[key] = nav
	}
	if err := stderrors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
