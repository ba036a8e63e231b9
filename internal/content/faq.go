package content

import (
	"strings"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// mergeFAQs combines mined question seeds with the industry FAQ set,
// deduplicating by normalized question text. Seeds with real answers lead;
// industry entries fill out the rest.
func mergeFAQs(seeds []model.QA, defaults []model.QA) []model.QA {
	seen := make(map[string]bool, len(seeds)+len(defaults))
	var out []model.QA

	add := func(qa model.QA) {
		key := normalizeQuestion(qa.Question)
		if key == "" || seen[key] || strings.TrimSpace(qa.Answer) == "" {
			return
		}
		seen[key] = true
		out = append(out, model.QA{
			Question: strings.TrimSpace(qa.Question),
			Answer:   strings.TrimSpace(qa.Answer),
		})
	}

	for _, qa := range seeds {
		add(qa)
	}
	for _, qa := range defaults {
		add(qa)
	}
	return out
}

func normalizeQuestion(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = strings.TrimRight(q, "?!. ")
	return strings.Join(strings.Fields(q), " ")
}
