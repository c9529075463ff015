package diagnostics

import (
	"git.home.luguber.info/inful/doxconf/internal/foundation/normalization"
)

// Category classifies a diagnostic by the facility that produced it.
type Category string

const (
	CategoryDeprecation    Category = "deprecation"
	CategoryRuntimeWarning Category = "runtime-warning"
	CategoryGenericWarning Category = "generic-warning"
	CategoryLogRecord      Category = "log-record"
	// CategoryOtherWarning covers warning classes outside the three above, such
	// as FutureWarning or PendingDeprecationWarning. No builtin rule targets it.
	CategoryOtherWarning Category = "other-warning"
)

// Categories lists every known category in declaration order.
func Categories() []Category {
	return []Category{CategoryDeprecation, CategoryRuntimeWarning, CategoryGenericWarning, CategoryLogRecord, CategoryOtherWarning}
}

var categoryNormalizer = normalization.NewNormalizer("category", map[string]Category{
	"deprecation":        CategoryDeprecation,
	"DeprecationWarning": CategoryDeprecation,
	"runtime-warning":    CategoryRuntimeWarning,
	"runtime":            CategoryRuntimeWarning,
	"RuntimeWarning":     CategoryRuntimeWarning,
	"generic-warning":    CategoryGenericWarning,
	"warning":            CategoryGenericWarning,
	"UserWarning":        CategoryGenericWarning,
	"log-record":         CategoryLogRecord,
	"log":                CategoryLogRecord,
	"other-warning":      CategoryOtherWarning,
	"other":              CategoryOtherWarning,
}, "")

// ParseCategory accepts the canonical names and the toolchain's own spellings
// (DeprecationWarning, RuntimeWarning, UserWarning).
func ParseCategory(raw string) (Category, error) {
	c, err := categoryNormalizer.Parse(raw)
	if err != nil {
		return "", err
	}
	if c == "" {
		return "", errEmptyCategory
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDeprecation, CategoryRuntimeWarning, CategoryGenericWarning, CategoryLogRecord, CategoryOtherWarning:
		return true
	}
	return false
}

// Severity is the level a diagnostic was emitted at.
type Severity string

const (
	SeverityDebug   Severity = "debug"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is one message produced during a documentation build.
type Diagnostic struct {
	Message  string
	Category Category
	Severity Severity
	// Raw is the line as it was read, when the diagnostic came from a stream.
	Raw string
}

// Text returns the raw line if present, else the message.
func (d Diagnostic) Text() string {
	if d.Raw != "" {
		return d.Raw
	}
	return d.Message
}
