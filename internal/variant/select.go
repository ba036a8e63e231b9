package variant

import (
	"go.uber.org/zap"

	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

// Select runs the full selection pipeline: classify personality, pick the
// base template, decide section inclusion and variants, and order the
// result. Pure function of its inputs; identical inputs always yield the
// identical selection.
func Select(facts model.ConfirmedFacts, quality model.DataQuality, profile industry.Profile, answers map[string]model.Answer) model.VariantSelection {
	personality := Classify(facts, quality, profile, answers)
	templateID, _ := PickTemplate(quality, personality, profile)
	decisions := DecideSections(facts, quality, personality, profile)

	sections := make(map[string]string, len(decisions))
	included := make(map[string]bool, len(decisions))
	reasoning := make(map[string]string, len(decisions))
	for name, d := range decisions {
		reasoning[name] = d.reason
		if d.include {
			sections[name] = d.variant
			included[name] = true
		}
	}

	sel := model.VariantSelection{
		TemplateID:  templateID,
		Personality: personality,
		Sections:    sections,
		Order:       orderSections(personality, included),
		Reasoning:   reasoning,
	}

	zap.L().Debug("variant: selection made",
		zap.String("template", sel.TemplateID),
		zap.String("personality", string(sel.Personality)),
		zap.Int("sections", len(sel.Sections)),
	)
	return sel
}
