package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTask       = "task"
	KeyProfile    = "profile"
	KeyRunID      = "run_id"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyHost       = "host"
	KeyPort       = "port"
	KeyURL        = "url"
	KeyName       = "name"
	KeyBinary     = "binary"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Task(t string) slog.Attr         { return slog.String(KeyTask, t) }
func Profile(p string) slog.Attr      { return slog.String(KeyProfile, p) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Host(h string) slog.Attr         { return slog.String(KeyHost, h) }
func Port(p int) slog.Attr            { return slog.Int(KeyPort, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Binary(b string) slog.Attr       { return slog.String(KeyBinary, b) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
