// Package linkverify checks that every navbar link points at an existing page.
package linkverify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/metrics"
	"github.com/apache/tsfile-website/internal/navbar"
)

const userAgent = "tsfile-site-linkcheck/1.0"

// Sink receives the broken links of a run.
type Sink interface {
	BrokenLinks(ctx context.Context, events []BrokenLinkEvent) error
}

// Checker verifies navbar links.
type Checker struct {
	sourceDir  string
	external   bool
	httpClient *http.Client
	recorder   metrics.Recorder
	sink       Sink
	now        func() time.Time
}

// NewChecker creates a checker from the links section of the configuration.
func NewChecker(cfg config.LinksConfig) (*Checker, error) {
	timeout := 10 * time.Second
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, errors.ValidationError("invalid links timeout").WithCause(err).WithContext("timeout", cfg.Timeout).Build()
		}
		timeout = d
	}
	return &Checker{
		sourceDir:  cfg.SourceDir,
		external:   cfg.CheckExternal,
		httpClient: &http.Client{Timeout: timeout},
		recorder:   metrics.NoopRecorder{},
		now:        time.Now,
	}, nil
}

func (c *Checker) WithRecorder(r metrics.Recorder) *Checker {
	if r != nil {
		c.recorder = r
	}
	return c
}

func (c *Checker) WithSink(s Sink) *Checker { c.sink = s; return c }

// Collect flattens the navbars into links, ordered by locale key then menu order.
// names maps each locale key to its navbar name.
func Collect(navbars map[string]navbar.Navbar, names map[string]string) []Link {
	keys := make([]string, 0, len(navbars))
	for k := range navbars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Link
	for _, locale := range keys {
		var walk func([]navbar.Entry)
		walk = func(entries []navbar.Entry) {
			for _, e := range entries {
				if e.Link != "" {
					out = append(out, Link{Locale: locale, Navbar: names[locale], Text: e.Text, URL: e.Link})
				}
				walk(e.Children)
			}
		}
		walk(navbars[locale])
	}
	return out
}

// Check verifies every link. A broken link is reported in the result, not as an
// error; the error return is reserved for a cancelled context.
func (c *Checker) Check(ctx context.Context, links []Link) (Report, error) {
	report := Report{Results: make([]Result, 0, len(links))}
	for _, l := range links {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		var res Result
		if IsInternal(l.URL) {
			res = c.checkInternal(l)
		} else {
			res = c.checkExternal(ctx, l)
		}
		if !res.OK && !res.Skipped {
			slog.Warn("Broken navbar link",
				logfields.Locale(l.Locale),
				logfields.URL(l.URL),
				slog.String("kind", string(res.Kind)),
				slog.String("reason", res.Error))
		}
		report.Results = append(report.Results, res)
	}

	for _, kind := range []Kind{KindInternal, KindExternal} {
		if _, broken := report.Count(kind); broken > 0 {
			c.recorder.IncBrokenLinks(string(kind), broken)
		}
	}
	c.publish(ctx, report)
	return report, nil
}

func (c *Checker) publish(ctx context.Context, report Report) {
	broken := report.Broken()
	if c.sink == nil || len(broken) == 0 {
		return
	}
	now := c.now()
	events := make([]BrokenLinkEvent, 0, len(broken))
	for _, r := range broken {
		events = append(events, NewBrokenLinkEvent(r, now))
	}
	if err := c.sink.BrokenLinks(ctx, events); err != nil {
		slog.Warn("Failed to publish broken link events", logfields.Error(err))
	}
}

func (c *Checker) checkInternal(l Link) Result {
	res := Result{Link: l, Kind: KindInternal}
	target, err := PagePath(c.sourceDir, l.URL)
	if err != nil {
		res.Error = fmt.Sprintf("invalid link: %v", err)
		return res
	}
	res.Target = target
	title, err := readTitle(target)
	if err != nil {
		if os.IsNotExist(err) {
			res.Error = "page not found"
		} else {
			res.Error = err.Error()
		}
		return res
	}
	res.OK = true
	res.Title = title
	return res
}

func (c *Checker) checkExternal(ctx context.Context, l Link) Result {
	res := Result{Link: l, Kind: KindExternal}
	if !c.external {
		res.Skipped = true
		return res
	}
	if !strings.HasPrefix(l.URL, "http://") && !strings.HasPrefix(l.URL, "https://") {
		// mailto: and friends
		res.Skipped = true
		return res
	}
	status, err := c.fetch(ctx, l.URL)
	res.Status = status
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = true
	return res
}

// fetch issues a HEAD request and falls back to GET for servers that do not
// answer HEAD properly.
func (c *Checker) fetch(ctx context.Context, link string) (int, error) {
	status, err := c.do(ctx, http.MethodHead, link)
	if err == nil && !isBroken(status) {
		return status, nil
	}
	if err != nil && ctx.Err() != nil {
		return 0, err
	}
	status, err = c.do(ctx, http.MethodGet, link)
	if err != nil {
		return 0, err
	}
	if isBroken(status) {
		return status, fmt.Errorf("HTTP %d: %s", status, http.StatusText(status))
	}
	return status, nil
}

func (c *Checker) do(ctx context.Context, method, link string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, link, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// isBroken treats auth challenges and rate limiting as proof the page exists.
func isBroken(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return status >= 400
}
