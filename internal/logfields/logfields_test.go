package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Locale", KeyLocale, "/zh/", Locale("/zh/")},
		{"Navbar", KeyNavbar, "zh", Navbar("zh")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"URL", KeyURL, "https://example.com", URL("https://example.com")},
		{"Branch", KeyBranch, "asf-staging", Branch("asf-staging")},
		{"DeployID", KeyDeployID, "d1", DeployID("d1")},
		{"Commit", KeyCommit, "0123abcd", Commit("0123abcd9999ffff")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if got := c.attr.Value.String(); got != c.attrVal {
			t.Errorf("%s value = %q, want %q", c.name, got, c.attrVal)
		}
	}
}
