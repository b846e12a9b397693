package render

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/site"
)

const (
	ConfigBaseName = "site.config"
	HeadFileName   = "head.html"
)

// Output lists the files written by Write.
type Output struct {
	ConfigPath string
	HeadPath   string
}

// yamlDocument carries the head in its tuple form, matching the JSON encoding.
type yamlDocument struct {
	Document `yaml:",inline"`
	Head     [][]any `yaml:"head"`
}

// Encode serializes the document in the given format.
func Encode(doc *Document, format config.RenderFormat) ([]byte, error) {
	switch format {
	case config.RenderFormatYAML:
		head := make([][]any, 0, len(doc.Head))
		for _, h := range doc.Head {
			head = append(head, h.Tuple())
		}
		data, err := yaml.Marshal(yamlDocument{Document: *doc, Head: head})
		if err != nil {
			return nil, errors.RenderError("failed to encode yaml").WithCause(err).Build()
		}
		return data, nil
	case config.RenderFormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, errors.RenderError("failed to encode json").WithCause(err).Build()
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.ValidationError("unsupported output format: " + string(format)).Build()
	}
}

// FileName returns the config file name for format.
func FileName(format config.RenderFormat) string {
	if format == config.RenderFormatYAML {
		return ConfigBaseName + ".yaml"
	}
	return ConfigBaseName + ".json"
}

// Write encodes the document into dir along with head.html.
func Write(doc *Document, dir string, format config.RenderFormat) (Output, error) {
	data, err := Encode(doc, format)
	if err != nil {
		return Output{}, err
	}
	head, err := RenderHead(doc.Head)
	if err != nil {
		return Output{}, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Output{}, errors.FileSystemError("failed to create output directory").WithCause(err).WithContext("path", dir).Build()
	}

	out := Output{
		ConfigPath: filepath.Join(dir, FileName(format)),
		HeadPath:   filepath.Join(dir, HeadFileName),
	}
	if err := writeFile(out.ConfigPath, data); err != nil {
		return Output{}, err
	}
	if err := writeFile(out.HeadPath, []byte(head)); err != nil {
		return Output{}, err
	}
	slog.Info("Rendered site configuration", logfields.Path(out.ConfigPath), logfields.Format(string(format)))
	return out, nil
}

// writeFile replaces path atomically so a watching dev server never sees half a file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.FileSystemError("failed to create temp file").WithCause(err).WithContext("path", path).Build()
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.FileSystemError("failed to write file").WithCause(err).WithContext("path", path).Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.FileSystemError("failed to write file").WithCause(err).WithContext("path", path).Build()
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.FileSystemError("failed to set file mode").WithCause(err).WithContext("path", path).Build()
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.FileSystemError("failed to replace file").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}

// RenderHead renders the tags as HTML, one element per line. Attributes are sorted
// so the output is stable.
func RenderHead(tags []site.HeadTag) (string, error) {
	var buf bytes.Buffer
	for _, t := range tags {
		name := strings.ToLower(strings.TrimSpace(t.Tag))
		if name == "" {
			return "", errors.RenderError("head tag without a name").Build()
		}
		n := &html.Node{Type: html.ElementNode, Data: name, DataAtom: atom.Lookup([]byte(name))}
		keys := make([]string, 0, len(t.Attrs))
		for k := range t.Attrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			n.Attr = append(n.Attr, html.Attribute{Key: k, Val: t.Attrs[k]})
		}
		if t.Content != "" {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: t.Content})
		}
		if err := html.Render(&buf, n); err != nil {
			return "", errors.RenderError("failed to render head tag").WithCause(err).WithContext("tag", name).Build()
		}
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}
