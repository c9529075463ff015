package diagnostics

import "git.home.luguber.info/inful/doxconf/internal/util/sets"

// Predicate reports whether a message of the given category must be suppressed.
type Predicate func(message string, category Category) bool

// RuleSet is an immutable collection of suppression rules and predicates.
// The zero value suppresses nothing. A nil *RuleSet is also valid.
type RuleSet struct {
	rules      []Rule
	predicates []Predicate
}

// NewRuleSet builds a rule set. Duplicate rules are kept once.
func NewRuleSet(rules ...Rule) *RuleSet {
	return (&RuleSet{}).With(rules...)
}

// With returns a new set containing the receiver's rules plus rules.
func (s *RuleSet) With(rules ...Rule) *RuleSet {
	next := s.clone()
	seen := sets.New[string]()
	for _, r := range next.rules {
		seen.Insert(r.key())
	}
	for _, r := range rules {
		if r.Kind == "" {
			r.Kind = KindSubstring
		}
		if seen.Insert(r.key()) {
			next.rules = append(next.rules, r)
		}
	}
	return next
}

// WithPredicate returns a new set that also consults p.
func (s *RuleSet) WithPredicate(p Predicate) *RuleSet {
	next := s.clone()
	if p != nil {
		next.predicates = append(next.predicates, p)
	}
	return next
}

func (s *RuleSet) clone() *RuleSet {
	if s == nil {
		return &RuleSet{}
	}
	return &RuleSet{
		rules:      append([]Rule(nil), s.rules...),
		predicates: append([]Predicate(nil), s.predicates...),
	}
}

// Suppresses reports whether d is dropped by any rule or predicate.
func (s *RuleSet) Suppresses(d Diagnostic) bool {
	return s.match(d.Message, d.Category)
}

func (s *RuleSet) match(message string, category Category) bool {
	if s == nil {
		return false
	}
	for _, r := range s.rules {
		if r.Matches(message, category) {
			return true
		}
	}
	for _, p := range s.predicates {
		if p(message, category) {
			return true
		}
	}
	return false
}

// Predicate exposes the set as a plain function.
func (s *RuleSet) Predicate() Predicate {
	return s.match
}

// Rules returns a copy of the rules in insertion order.
func (s *RuleSet) Rules() []Rule {
	if s == nil {
		return nil
	}
	return append([]Rule(nil), s.rules...)
}

// Len is the number of rules, excluding predicates.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Filter returns the diagnostics that are not suppressed, in their original order.
func (s *RuleSet) Filter(in []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(in))
	for _, d := range in {
		if !s.Suppresses(d) {
			out = append(out, d)
		}
	}
	return out
}

const (
	// PatternElementTruthValue is raised by the XML library on `if element:` tests.
	PatternElementTruthValue = "Testing an element's truth value"
	// PatternImageNotInXML is reported for external images Doxygen did not copy.
	PatternImageNotInXML = "was not found in XML_OUTPUT"
)

// DefaultRules returns the suppressions every documentation build uses. The
// XML_OUTPUT pattern is registered for both warning categories and for plain log
// records because the generator reports it through both channels.
func DefaultRules() []Rule {
	return []Rule{
		MustRule(PatternElementTruthValue, CategoryDeprecation),
		MustRule(PatternImageNotInXML, CategoryRuntimeWarning),
		MustRule(PatternImageNotInXML, CategoryGenericWarning),
		MustRule(PatternImageNotInXML, CategoryLogRecord),
	}
}

// Default is NewRuleSet(DefaultRules()...).
func Default() *RuleSet {
	return NewRuleSet(DefaultRules()...)
}
