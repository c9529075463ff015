package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCategory   = "category"
	KeyPattern    = "pattern"
	KeyRuleCount  = "rule_count"
	KeyGroup      = "group"
	KeyTarget     = "target"
	KeyPath       = "path"
	KeyCommand    = "command"
	KeyBuildID    = "build_id"
	KeyEmitted    = "emitted"
	KeySuppressed = "suppressed"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Pattern(p string) slog.Attr      { return slog.String(KeyPattern, p) }
func RuleCount(n int) slog.Attr       { return slog.Int(KeyRuleCount, n) }
func Group(g string) slog.Attr        { return slog.String(KeyGroup, g) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Emitted(n int) slog.Attr         { return slog.Int(KeyEmitted, n) }
func Suppressed(n int) slog.Attr      { return slog.Int(KeySuppressed, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
