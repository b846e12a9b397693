// Package navbar holds the per-locale navigation menus and their on-disk YAML form.
package navbar

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// Entry is a single navigation menu item.
type Entry struct {
	Text     string  `yaml:"text" json:"text"`
	Link     string  `yaml:"link,omitempty" json:"link,omitempty"`
	Target   string  `yaml:"target,omitempty" json:"target,omitempty"`
	Children []Entry `yaml:"children,omitempty" json:"children,omitempty"`
}

// Navbar is an ordered list of top-level entries.
type Navbar []Entry

var validTargets = map[string]bool{"_self": true, "_blank": true, "_parent": true, "_top": true}

// Validate checks that every entry has text, and every entry either links somewhere
// or groups further children.
func (n Navbar) Validate() error {
	var errs []error
	var walk func(path string, entries []Entry)
	walk = func(path string, entries []Entry) {
		for i, e := range entries {
			where := fmt.Sprintf("%s[%d]", path, i)
			if strings.TrimSpace(e.Text) != "" {
				where = fmt.Sprintf("%s %q", where, e.Text)
			} else {
				errs = append(errs, errors.ValidationError(where+": entry text is empty").Build())
			}
			if e.Link == "" && len(e.Children) == 0 {
				errs = append(errs, errors.ValidationError(where+": entry needs a link or children").Build())
			}
			if e.Target != "" && !validTargets[e.Target] {
				errs = append(errs, errors.ValidationError(fmt.Sprintf("%s: unsupported target %q", where, e.Target)).Build())
			}
			walk(where+".children", e.Children)
		}
	}
	walk("navbar", n)
	return stderrors.Join(errs...)
}

// Links returns every link in menu order.
func (n Navbar) Links() []string {
	var out []string
	var walk func([]Entry)
	walk = func(entries []Entry) {
		for _, e := range entries {
			if e.Link != "" {
				out = append(out, e.Link)
			}
			walk(e.Children)
		}
	}
	walk(n)
	return out
}

// Path returns the file holding the navbar called name.
func Path(dir, name string) string { return filepath.Join(dir, name+".yaml") }

// Exists reports whether a navbar file is present.
func Exists(dir, name string) bool {
	info, err := os.Stat(Path(dir, name))
	return err == nil && !info.IsDir()
}

// Load reads and decodes a navbar file. Unknown fields are rejected.
func Load(dir, name string) (Navbar, error) {
	path := Path(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "navbar file not found").
				WithCause(err).WithContext("path", path).Fatal().Build()
		}
		return nil, errors.FileSystemError("failed to read navbar file").WithCause(err).WithContext("path", path).Build()
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var nav Navbar
	if err := dec.Decode(&nav); err != nil {
		return nil, errors.ConfigError("failed to decode navbar file").WithCause(err).WithContext("path", path).Build()
	}
	return nav, nil
}

// Save writes the navbar as YAML, creating dir if needed.
func Save(dir, name string, n Navbar) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.FileSystemError("failed to create navbar directory").WithCause(err).WithContext("path", dir).Build()
	}
	data, err := yaml.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal navbar: %w", err)
	}
	path := Path(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FileSystemError("failed to write navbar file").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}
