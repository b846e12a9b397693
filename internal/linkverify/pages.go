package linkverify

import (
	"bytes"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// PagePath maps a site-absolute link onto the markdown file the generator builds it
// from: "/a/b" and "/a/b.html" come from a/b.md, "/a/" from a/README.md.
func PagePath(sourceDir, link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	p := path.Clean("/" + u.Path)
	if strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "README.md")
	} else {
		p = strings.TrimSuffix(p, ".html")
		p = strings.TrimSuffix(p, ".md") + ".md"
	}
	return filepath.Join(sourceDir, filepath.FromSlash(strings.TrimPrefix(p, "/"))), nil
}

// IsInternal reports whether link is site-absolute.
func IsInternal(link string) bool {
	return strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//")
}

var md = goldmark.New()

// PageTitle returns the frontmatter title of a markdown page, or the text of its
// first heading when there is none.
func PageTitle(content []byte) string {
	body := content
	if fm, rest, ok := splitFrontMatter(content); ok {
		var meta struct {
			Title string `yaml:"title"`
		}
		if yaml.Unmarshal(fm, &meta) == nil && strings.TrimSpace(meta.Title) != "" {
			return strings.TrimSpace(meta.Title)
		}
		body = rest
	}

	root := md.Parser().Parse(text.NewReader(body))
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			title = strings.TrimSpace(nodeText(h, body))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

func nodeText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(nodeText(c, source))
		}
	}
	return buf.String()
}

func splitFrontMatter(content []byte) (fm, rest []byte, ok bool) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, content, false
	}
	start := bytes.IndexByte(content, '\n') + 1
	end := bytes.Index(content[start:], []byte("\n---"))
	if end < 0 {
		return nil, content, false
	}
	fm = content[start : start+end]
	rest = content[start+end+len("\n---"):]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = nil
	}
	return fm, rest, true
}

func readTitle(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return PageTitle(data), nil
}
