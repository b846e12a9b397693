package linkverify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/metrics"
	"github.com/apache/tsfile-website/internal/navbar"
)

func TestPagePath(t *testing.T) {
	src := filepath.FromSlash("/docs/src")
	cases := []struct{ link, want string }{
		{"/UserGuide/latest/QuickStart/QuickStart", "UserGuide/latest/QuickStart/QuickStart.md"},
		{"/UserGuide/latest/QuickStart/QuickStart.html", "UserGuide/latest/QuickStart/QuickStart.md"},
		{"/Download/", "Download/README.md"},
		{"/", "README.md"},
		{"/zh/Community/About", "zh/Community/About.md"},
		{"/zh/Community/About#x", "zh/Community/About.md"},
		{"/a/b.md?lang=en", "a/b.md"},
	}
	for _, tc := range cases {
		t.Run(tc.link, func(t *testing.T) {
			got, err := PagePath(src, tc.link)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(src, filepath.FromSlash(tc.want)), got)
		})
	}
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal("/Download/"))
	assert.False(t, IsInternal("//cdn.example.org/x.js"))
	assert.False(t, IsInternal("https://www.apache.org/"))
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Quick Start", PageTitle([]byte("# Quick Start\n\nbody\n\n## Later\n")))
	assert.Equal(t, "From front", PageTitle([]byte("---\ntitle: From front\n---\n# Heading\n")))
	assert.Equal(t, "Heading code", PageTitle([]byte("---\nsidebar: auto\n---\n\nintro\n\n## Heading `code`\n")))
	assert.Equal(t, "Setext", PageTitle([]byte("Setext\n======\n")))
	assert.Empty(t, PageTitle([]byte("no headings here\n")))
}

func writePage(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

type recordingSink struct {
	events []BrokenLinkEvent
}

func (s *recordingSink) BrokenLinks(_ context.Context, events []BrokenLinkEvent) error {
	s.events = append(s.events, events...)
	return nil
}

type brokenCounter struct {
	metrics.NoopRecorder
	counts map[string]int
}

func (b *brokenCounter) IncBrokenLinks(kind string, n int) { b.counts[kind] += n }

func TestCheckInternalLinks(t *testing.T) {
	src := t.TempDir()
	writePage(t, src, "UserGuide/latest/QuickStart/QuickStart.md", "# Quick Start\n")
	writePage(t, src, "Download/README.md", "---\ntitle: Download\n---\n")

	navbars := map[string]navbar.Navbar{
		"/": {
			{Text: "Documentation", Link: "/UserGuide/latest/QuickStart/QuickStart"},
			{Text: "Download", Link: "/Download/"},
			{Text: "More", Children: []navbar.Entry{{Text: "Missing", Link: "/Community/About"}}},
			{Text: "ASF", Link: "https://www.apache.org/"},
		},
	}
	links := Collect(navbars, map[string]string{"/": "en"})
	require.Len(t, links, 4)
	assert.Equal(t, "en", links[0].Navbar)

	checker, err := NewChecker(config.LinksConfig{SourceDir: src})
	require.NoError(t, err)
	rec := &brokenCounter{counts: map[string]int{}}
	sink := &recordingSink{}
	checker.WithRecorder(rec).WithSink(sink)
	checker.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	report, err := checker.Check(context.Background(), links)
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	assert.True(t, report.Results[0].OK)
	assert.Equal(t, "Quick Start", report.Results[0].Title)
	assert.True(t, report.Results[1].OK)
	assert.Equal(t, "Download", report.Results[1].Title)
	assert.False(t, report.Results[2].OK)
	assert.Equal(t, "page not found", report.Results[2].Error)
	assert.True(t, report.Results[3].Skipped, "external links are skipped unless enabled")

	checked, broken := report.Count(KindInternal)
	assert.Equal(t, 3, checked)
	assert.Equal(t, 1, broken)
	assert.Equal(t, map[string]int{"internal": 1}, rec.counts)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "/Community/About", sink.events[0].URL)
	assert.Equal(t, "Missing", sink.events[0].Text)
	assert.Equal(t, KindInternal, sink.events[0].Kind)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), sink.events[0].Timestamp)
}

func TestCheckExternalFallsBackToGET(t *testing.T) {
	var heads, gets atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			heads.Add(1)
			w.WriteHeader(http.StatusNotFound)
		case http.MethodGet:
			gets.Add(1)
			_, _ = w.Write([]byte("ok"))
		}
	}))
	t.Cleanup(srv.Close)

	checker, err := NewChecker(config.LinksConfig{CheckExternal: true, Timeout: "2s"})
	require.NoError(t, err)
	report, err := checker.Check(context.Background(), []Link{{Locale: "/", Text: "x", URL: srv.URL + "/page"}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].OK)
	assert.Equal(t, http.StatusOK, report.Results[0].Status)
	assert.EqualValues(t, 1, heads.Load())
	assert.EqualValues(t, 1, gets.Load())
}

func TestCheckExternalStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gone":
			w.WriteHeader(http.StatusGone)
		case "/busy":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/private":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)

	checker, err := NewChecker(config.LinksConfig{CheckExternal: true})
	require.NoError(t, err)
	report, err := checker.Check(context.Background(), []Link{
		{URL: srv.URL + "/gone"},
		{URL: srv.URL + "/busy"},
		{URL: srv.URL + "/private"},
		{URL: "mailto:dev@tsfile.apache.org"},
	})
	require.NoError(t, err)

	assert.False(t, report.Results[0].OK)
	assert.Equal(t, http.StatusGone, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Error, "410")
	assert.True(t, report.Results[1].OK)
	assert.True(t, report.Results[2].OK)
	assert.True(t, report.Results[3].Skipped)
	assert.Len(t, report.Broken(), 1)
}

func TestCheckStopsOnCancelledContext(t *testing.T) {
	checker, err := NewChecker(config.LinksConfig{SourceDir: t.TempDir()})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = checker.Check(ctx, []Link{{URL: "/a"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewCheckerRejectsBadTimeout(t *testing.T) {
	_, err := NewChecker(config.LinksConfig{Timeout: "soon"})
	require.Error(t, err)
}

func TestCheckExternalDisabledSendsNoRequests(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	checker, err := NewChecker(config.LinksConfig{})
	require.NoError(t, err)
	report, err := checker.Check(context.Background(), []Link{{URL: srv.URL + "/gone"}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Skipped)
	assert.Empty(t, report.Broken())
	assert.Zero(t, hits.Load())
}
