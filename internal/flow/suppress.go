package flow

import (
	"github.com/sells-group/sitegen-cli/internal/model"
)

// FilterApplicable evaluates each catalog question's declarative suppression
// predicates against the current confidence and facts and returns the
// surviving set. Stateless and deterministic: identical inputs always yield
// the identical applicable set, so it is safe to call repeatedly with an
// evolving ConfidenceMap.
func FilterApplicable(catalog []model.Question, conf model.ConfidenceMap, facts model.ConfirmedFacts) []model.Question {
	out := make([]model.Question, 0, len(catalog))
	for _, q := range catalog {
		if Suppressed(q, conf, facts) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Suppressed reports whether any of the question's predicates match, or its
// data precondition fails. A question with no matching predicate is never
// suppressed.
func Suppressed(q model.Question, conf model.ConfidenceMap, facts model.ConfirmedFacts) bool {
	if q.Requires != nil {
		min := q.Requires.MinCount
		if min == 0 {
			min = 1
		}
		if facts.Count(q.Requires.Fact) < min {
			return true
		}
	}

	for _, rule := range q.Suppress {
		if ruleMatches(rule, conf, facts) {
			return true
		}
	}
	return false
}

func ruleMatches(rule model.SuppressRule, conf model.ConfidenceMap, facts model.ConfirmedFacts) bool {
	if rule.HoursComplete {
		return facts.Hours.Complete()
	}
	if rule.Fact == "" {
		return false
	}
	if rule.Equals != "" {
		return facts.StringVal(rule.Fact) == rule.Equals
	}
	if rule.MinCount > 0 {
		return facts.Count(rule.Fact) >= rule.MinCount
	}
	if rule.MinConfidence > 0 {
		return conf.Get(rule.Fact) >= rule.MinConfidence
	}
	return false
}
