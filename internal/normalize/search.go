package normalize

import (
	"strings"

	"github.com/sells-group/sitegen-cli/internal/model"
)

func fromSearch(s *model.SearchRecord) model.PartialFacts {
	facts := model.PartialFacts{}

	if comps := searchCompetitors(s.Competitors); len(comps) > 0 {
		facts[model.FactCompetitors] = comps
	}
	if qas := searchQAs(s.PeopleAlsoAsk); len(qas) > 0 {
		facts[model.FactFAQSeeds] = qas
	}
	if kws := cleanStrings(s.Keywords); len(kws) > 0 {
		facts[model.FactKeywords] = dedupeFold(kws)
	}

	// Snippets occasionally carry a usable one-line description when the
	// profile has none; only the longest is worth keeping.
	if desc := longestSnippet(s.Snippets); desc != "" {
		facts[model.FactDescription] = desc
	}

	return facts
}

func searchCompetitors(in []model.Competitor) []model.Competitor {
	out := make([]model.Competitor, 0, len(in))
	for _, c := range in {
		name, ok := toString(c.Name)
		if !ok {
			continue
		}
		out = append(out, model.Competitor{Name: name, Snippet: strings.TrimSpace(c.Snippet)})
	}
	return out
}

func searchQAs(in []model.QA) []model.QA {
	out := make([]model.QA, 0, len(in))
	for _, qa := range in {
		q, ok := toString(qa.Question)
		if !ok {
			continue
		}
		out = append(out, model.QA{Question: q, Answer: strings.TrimSpace(qa.Answer)})
	}
	return out
}

func longestSnippet(snippets []string) string {
	best := ""
	for _, s := range cleanStrings(snippets) {
		if len(s) > len(best) {
			best = s
		}
	}
	// Too short to be a description.
	if len(best) < 40 {
		return ""
	}
	return best
}
