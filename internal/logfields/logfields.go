package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLocale   = "locale"
	KeyNavbar   = "navbar"
	KeyPath     = "path"
	KeyURL      = "url"
	KeyBranch   = "branch"
	KeyRemote   = "remote"
	KeyCommit   = "commit"
	KeyDeployID = "deploy_id"
	KeyStage    = "stage"
	KeyFormat   = "format"
	KeyDuration = "duration_ms"
	KeyAttempt  = "attempt"
	KeyPlugin   = "plugin"
	KeySubject  = "subject"
	KeySchedule = "schedule"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Locale(key string) slog.Attr     { return slog.String(KeyLocale, key) }
func Navbar(name string) slog.Attr    { return slog.String(KeyNavbar, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Remote(r string) slog.Attr       { return slog.String(KeyRemote, r) }
func DeployID(id string) slog.Attr    { return slog.String(KeyDeployID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Attempt(n int) slog.Attr         { return slog.Int(KeyAttempt, n) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Schedule(s string) slog.Attr     { return slog.String(KeySchedule, s) }

// Commit shortens a full hash to 8 characters.
func Commit(hash string) slog.Attr {
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return slog.String(KeyCommit, hash)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
