package linkverify

import "time"

// Kind tells internal site pages apart from links leaving the site.
type Kind string

const (
	KindInternal Kind = "internal"
	KindExternal Kind = "external"
)

// Link is a navbar entry that points somewhere.
type Link struct {
	Locale string `json:"locale"`
	Navbar string `json:"navbar"`
	Text   string `json:"text"`
	URL    string `json:"url"`
}

// Result is the verdict for a single link.
type Result struct {
	Link

	Kind    Kind   `json:"kind"`
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	Status  int    `json:"status,omitempty"` // HTTP status, 0 for internal links
	Target  string `json:"target,omitempty"` // resolved markdown file
	Title   string `json:"title,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BrokenLinkEvent is published for every broken navbar link.
type BrokenLinkEvent struct {
	Locale    string    `json:"locale"`
	Navbar    string    `json:"navbar"`
	Text      string    `json:"text"`
	URL       string    `json:"url"`
	Kind      Kind      `json:"kind"`
	Status    int       `json:"status"`
	Target    string    `json:"target,omitempty"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBrokenLinkEvent converts a failed result into its event form.
func NewBrokenLinkEvent(r Result, at time.Time) BrokenLinkEvent {
	return BrokenLinkEvent{
		Locale:    r.Locale,
		Navbar:    r.Navbar,
		Text:      r.Text,
		URL:       r.URL,
		Kind:      r.Kind,
		Status:    r.Status,
		Target:    r.Target,
		Error:     r.Error,
		Timestamp: at,
	}
}

// Report collects the results of one check run in navbar order.
type Report struct {
	Results []Result `json:"results"`
}

// Broken returns the failed results.
func (r Report) Broken() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK && !res.Skipped {
			out = append(out, res)
		}
	}
	return out
}

// Count returns how many results of the given kind were checked and how many failed.
func (r Report) Count(kind Kind) (checked, broken int) {
	for _, res := range r.Results {
		if res.Kind != kind || res.Skipped {
			continue
		}
		checked++
		if !res.OK {
			broken++
		}
	}
	return checked, broken
}
