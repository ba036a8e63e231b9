package flow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// unsureValues are terminal non-answers: recorded in the skip log, never
// inferred from, never re-asked.
var unsureValues = map[string]bool{
	"unsure":       true,
	"not sure":     true,
	"i don't know": true,
	"dont know":    true,
	"skip":         true,
}

func isUnsure(value string) bool {
	return unsureValues[strings.ToLower(strings.TrimSpace(value))]
}

// answerFacts rebuilds the ground-truth fact set from recorded answers.
// Rebuilding from the catalog each time (instead of storing integrated
// facts) keeps integration deterministic across serialize/resume. Answers
// apply in step order so a later answer (a follow-up refining its parent's
// fact) always wins.
func answerFacts(catalog *Catalog, answers map[string]model.Answer) model.PartialFacts {
	ordered := make([]model.Answer, 0, len(answers))
	for _, a := range answers {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Step < ordered[j].Step })

	facts := model.PartialFacts{}
	for _, a := range ordered {
		q, ok := catalog.Get(a.QuestionID)
		if !ok {
			continue
		}
		if opt, ok := matchOption(q, a.Value); ok && len(opt.Facts) > 0 {
			for key, raw := range opt.Facts {
				if v, ok := coerceFact(key, raw); ok {
					facts[key] = v
				}
			}
			continue
		}
		// Free-text answer: the raw value supplies every captured fact.
		for _, key := range q.Captures {
			if v, ok := coerceFact(key, a.Value); ok {
				facts[key] = v
			}
		}
	}
	return facts
}

// inferredFacts renders accumulated inferences as a fact set. Inference
// confidence is fixed by the inferred source tier, never the catalog's
// defaults.
func inferredFacts(inferred []model.InferredFact) model.PartialFacts {
	facts := model.PartialFacts{}
	for _, inf := range inferred {
		if v, ok := coerceFact(inf.Key, inf.Value); ok {
			facts[inf.Key] = v
		}
	}
	return facts
}

func matchOption(q model.Question, value string) (model.Option, bool) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, opt := range q.Options {
		if strings.ToLower(opt.Value) == needle {
			return opt, true
		}
	}
	return model.Option{}, false
}

// coerceFact converts an answer or catalog value into the canonical shape
// for its fact key. Values that fail the type check are treated as absent.
func coerceFact(key string, raw any) (any, bool) {
	switch key {
	case model.FactYearsInBusiness, model.FactTeamSize:
		return coerceInt(raw)
	case model.FactServices, model.FactServiceArea, model.FactDifferentiators,
		model.FactCertifications, model.FactAwards:
		return coerceList(raw)
	case model.FactEmergency:
		b, ok := raw.(bool)
		return b, ok
	case model.FactHours:
		return coerceHours(raw)
	default:
		return coerceString(raw)
	}
}

func coerceInt(raw any) (any, bool) {
	switch n := raw.(type) {
	case int:
		return n, n > 0
	case int64:
		return int(n), n > 0
	case float64:
		return int(n), n > 0
	case string:
		return 0, false
	default:
		return 0, false
	}
}

// coerceList accepts a slice or a comma-separated free-text string.
func coerceList(raw any) (any, bool) {
	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		items = strings.Split(v, ",")
	default:
		return nil, false
	}

	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// coerceHours converts the YAML map shape into WeekHours.
func coerceHours(raw any) (any, bool) {
	switch v := raw.(type) {
	case model.WeekHours:
		return v, len(v) > 0
	case map[string][]string:
		return model.WeekHours(v), len(v) > 0
	case map[string]any:
		out := model.WeekHours{}
		for day, periods := range v {
			day = strings.ToLower(strings.TrimSpace(day))
			list, ok := periods.([]any)
			if !ok || day == "" {
				continue
			}
			var cleaned []string
			for _, p := range list {
				if s, ok := p.(string); ok && strings.TrimSpace(s) != "" {
					cleaned = append(cleaned, strings.TrimSpace(s))
				}
			}
			if len(cleaned) > 0 {
				out[day] = cleaned
			}
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}

func coerceString(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	case int:
		return fmt.Sprintf("%d", v), true
	case float64:
		return fmt.Sprintf("%v", v), true
	default:
		return "", false
	}
}
