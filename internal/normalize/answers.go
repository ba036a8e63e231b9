package normalize

import (
	"github.com/sells-group/sitegen-cli/internal/model"
)

// fromAnswers maps a prior user-answer bag (fact key → value) onto canonical
// fact shapes. Answers are keyed by fact vocabulary already, so this mostly
// coerces value shapes; values that fail a type check are treated as absent.
func fromAnswers(answers map[string]any) model.PartialFacts {
	facts := model.PartialFacts{}

	for key, raw := range answers {
		switch key {
		case model.FactYearsInBusiness, model.FactTeamSize:
			if n, ok := toInt(raw); ok && n > 0 {
				facts[key] = n
			}
		case model.FactServices, model.FactServiceArea, model.FactDifferentiators,
			model.FactCertifications, model.FactAwards, model.FactKeywords:
			if vals, ok := toStringSlice(raw); ok {
				facts[key] = dedupeFold(vals)
			}
		case model.FactEmergency:
			if b, ok := toBool(raw); ok {
				facts[key] = b
			}
		case model.FactPhotos, model.FactReviews, model.FactHours,
			model.FactCoordinates, model.FactFAQSeeds, model.FactCompetitors:
			// Structured facts never arrive through answers.
		default:
			if s, ok := toString(raw); ok {
				facts[key] = s
			}
		}
	}

	return facts
}
