package shopping

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mbracken/skillet/internal/apperr"
)

// Behavior selects how an ignore pattern matches a description.
type Behavior int

const (
	BehaviorExact Behavior = iota
	BehaviorPartial
	BehaviorWildcard
	BehaviorRegex
)

// Behavior config values.
const (
	BehaviorNameExact    = "exact"
	BehaviorNamePartial  = "partial"
	BehaviorNameWildcard = "wildcard"
	BehaviorNameRegex    = "regex"
)

func (b Behavior) String() string {
	switch b {
	case BehaviorPartial:
		return BehaviorNamePartial
	case BehaviorWildcard:
		return BehaviorNameWildcard
	case BehaviorRegex:
		return BehaviorNameRegex
	default:
		return BehaviorNameExact
	}
}

// ParseBehavior maps a config value to a Behavior.
func ParseBehavior(s string) (Behavior, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case BehaviorNameExact:
		return BehaviorExact, true
	case BehaviorNamePartial:
		return BehaviorPartial, true
	case BehaviorNameWildcard:
		return BehaviorWildcard, true
	case BehaviorNameRegex:
		return BehaviorRegex, true
	}
	return 0, false
}

// Rule is one ignore-list entry.
type Rule struct {
	Pattern  string
	Behavior Behavior
}

type matcher func(desc string) bool

// RuleSet is a compiled ignore list, ready for matching.
type RuleSet struct {
	matchers []matcher
}

// CompileRules compiles an ignore list. Wildcard and regex patterns are
// compiled up front: a pattern that does not compile is reported here,
// naming the pattern, before any filtering runs.
func CompileRules(rules []Rule) (RuleSet, error) {
	set := RuleSet{matchers: make([]matcher, 0, len(rules))}
	for _, r := range rules {
		pattern := strings.ToLower(r.Pattern)
		switch r.Behavior {
		case BehaviorExact:
			set.matchers = append(set.matchers, func(d string) bool { return d == pattern })
		case BehaviorPartial:
			set.matchers = append(set.matchers, func(d string) bool { return strings.Contains(d, pattern) })
		case BehaviorWildcard:
			expanded := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*") + "$"
			re, err := regexp.Compile(expanded)
			if err != nil {
				return RuleSet{}, fmt.Errorf("shopping: wildcard pattern %q: %w", r.Pattern, apperr.ErrInvalidIgnorePattern)
			}
			set.matchers = append(set.matchers, re.MatchString)
		case BehaviorRegex:
			// Compiled as written: lowercasing would flip escaped classes
			// like \D into \d. Case-insensitivity comes from the (?i) flag.
			re, err := regexp.Compile("(?i)" + r.Pattern)
			if err != nil {
				return RuleSet{}, fmt.Errorf("shopping: regex pattern %q: %w", r.Pattern, apperr.ErrInvalidIgnorePattern)
			}
			set.matchers = append(set.matchers, re.MatchString)
		default:
			return RuleSet{}, fmt.Errorf("shopping: pattern %q: unknown behavior %d: %w", r.Pattern, r.Behavior, apperr.ErrInvalidIgnorePattern)
		}
	}
	return set, nil
}

// Matches reports whether any rule matches the case-folded description.
func (s RuleSet) Matches(description string) bool {
	desc := strings.ToLower(description)
	for _, m := range s.matchers {
		if m(desc) {
			return true
		}
	}
	return false
}

// Filter drops every ingredient whose description matches the rule set.
func Filter(ingredients []Ingredient, rules RuleSet) []Ingredient {
	out := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if rules.Matches(ing.Description) {
			continue
		}
		out = append(out, ing)
	}
	return out
}
