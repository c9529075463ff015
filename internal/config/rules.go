package config

import (
	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/foundation/normalization"
)

type patternKind = diagnostics.Kind

const (
	patternKindSubstring = diagnostics.KindSubstring
	patternKindRegexp    = diagnostics.KindRegexp
)

var patternKindNormalizer = normalization.NewNormalizer("pattern kind", map[string]patternKind{
	"substring": patternKindSubstring,
	"contains":  patternKindSubstring,
	"regexp":    patternKindRegexp,
	"regex":     patternKindRegexp,
}, patternKindSubstring)

// Rule converts the declaration into a diagnostics rule.
func (s Suppression) Rule() (diagnostics.Rule, error) {
	category, err := diagnostics.ParseCategory(s.Category)
	if err != nil {
		return diagnostics.Rule{}, ferrors.ValidationError("invalid suppression category").
			WithCause(err).
			WithContext("pattern", s.Pattern).
			Build()
	}
	kind, err := patternKindNormalizer.Parse(s.Kind)
	if err != nil {
		return diagnostics.Rule{}, ferrors.ValidationError("invalid suppression kind").
			WithCause(err).
			WithContext("pattern", s.Pattern).
			Build()
	}
	if kind == patternKindRegexp {
		return diagnostics.NewRegexpRule(s.Pattern, category)
	}
	return diagnostics.NewRule(s.Pattern, category)
}

// RuleSet builds the immutable rule set for this configuration: the builtin
// rules (unless disabled) followed by the declared suppressions.
func (c *Config) RuleSet() (*diagnostics.RuleSet, error) {
	var rules []diagnostics.Rule
	if c.BuiltinsEnabled() {
		rules = append(rules, diagnostics.DefaultRules()...)
	}
	for i, s := range c.Suppressions {
		r, err := s.Rule()
		if err != nil {
			if ce, ok := ferrors.AsClassified(err); ok {
				return nil, ce.WithContext("index", i)
			}
			return nil, err
		}
		rules = append(rules, r)
	}
	return diagnostics.NewRuleSet(rules...), nil
}
