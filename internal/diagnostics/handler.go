package diagnostics

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/doxconf/internal/logfields"
)

// Handler is a slog.Handler that drops records suppressed by a RuleSet before
// they reach the wrapped handler. Records are checked as log-record diagnostics
// unless they carry a logfields.KeyCategory attribute naming another category.
type Handler struct {
	next     slog.Handler
	rules    *RuleSet
	observer Observer
	category Category
}

// NewHandler wraps next. observer may be nil.
func NewHandler(next slog.Handler, rules *RuleSet, observer Observer) *Handler {
	return &Handler{next: next, rules: rules, observer: observer, category: CategoryLogRecord}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	category := h.category
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != logfields.KeyCategory {
			return true
		}
		if c := Category(a.Value.String()); c.Valid() {
			category = c
		}
		return false
	})

	suppressed := h.rules.Suppresses(Diagnostic{Message: r.Message, Category: category, Severity: severityOf(r.Level)})
	if h.observer != nil {
		h.observer.ObserveDiagnostic(category, suppressed)
	}
	if suppressed {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	for _, a := range attrs {
		if a.Key == logfields.KeyCategory {
			if c := Category(a.Value.String()); c.Valid() {
				cp.category = c
			}
		}
	}
	cp.next = h.next.WithAttrs(attrs)
	return &cp
}

func (h *Handler) WithGroup(name string) slog.Handler {
	cp := *h
	cp.next = h.next.WithGroup(name)
	return &cp
}

func severityOf(level slog.Level) Severity {
	switch {
	case level < slog.LevelInfo:
		return SeverityDebug
	case level < slog.LevelWarn:
		return SeverityInfo
	case level < slog.LevelError:
		return SeverityWarning
	default:
		return SeverityError
	}
}
