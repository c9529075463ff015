package diagnostics

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
)

var errEmptyCategory = errors.New("category must not be empty")

// Kind selects how a rule's pattern is matched against a message.
type Kind string

const (
	KindSubstring Kind = "substring"
	KindRegexp    Kind = "regexp"
)

// Rule suppresses diagnostics of one category whose message matches Pattern.
type Rule struct {
	Pattern  string
	Category Category
	Kind     Kind

	re *regexp.Regexp
}

// NewRule builds a substring rule.
func NewRule(pattern string, category Category) (Rule, error) {
	return newRule(pattern, category, KindSubstring)
}

// NewRegexpRule builds a rule whose pattern is a regular expression searched
// anywhere in the message.
func NewRegexpRule(pattern string, category Category) (Rule, error) {
	return newRule(pattern, category, KindRegexp)
}

// MustRule is NewRule that panics; for package-level rule tables.
func MustRule(pattern string, category Category) Rule {
	r, err := NewRule(pattern, category)
	if err != nil {
		panic(err)
	}
	return r
}

func newRule(pattern string, category Category, kind Kind) (Rule, error) {
	if pattern == "" {
		return Rule{}, ferrors.ValidationError("suppression pattern must not be empty").
			WithContext("category", string(category)).
			Build()
	}
	if !category.Valid() {
		return Rule{}, ferrors.ValidationError("unknown diagnostic category").
			WithContext("category", string(category)).
			WithContext("pattern", pattern).
			Build()
	}
	r := Rule{Pattern: pattern, Category: category, Kind: kind}
	switch kind {
	case KindSubstring:
	case KindRegexp:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Rule{}, ferrors.ValidationError("invalid suppression pattern").
				WithCause(err).
				WithContext("pattern", pattern).
				Build()
		}
		r.re = re
	default:
		return Rule{}, ferrors.ValidationError("unknown pattern kind").
			WithContext("kind", string(kind)).
			Build()
	}
	return r, nil
}

// Matches reports whether the rule suppresses a message of the given category.
func (r Rule) Matches(message string, category Category) bool {
	if category != r.Category {
		return false
	}
	if r.re != nil {
		return r.re.MatchString(message)
	}
	return strings.Contains(message, r.Pattern)
}

func (r Rule) key() string {
	return string(r.Kind) + "\x00" + string(r.Category) + "\x00" + r.Pattern
}

func (r Rule) String() string {
	if r.Kind == KindRegexp {
		return fmt.Sprintf("%s /%s/", r.Category, r.Pattern)
	}
	return fmt.Sprintf("%s %q", r.Category, r.Pattern)
}
