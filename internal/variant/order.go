package variant

import "github.com/sells-group/sitegen-cli/internal/model"

// standardOrder is the canonical section sequence. Personality-specific
// heads pull their priority sections forward; everything else keeps this
// relative order.
var standardOrder = []string{
	model.SectionHero,
	model.SectionEmergency,
	model.SectionServices,
	model.SectionFeatures,
	model.SectionAbout,
	model.SectionGallery,
	model.SectionProcess,
	model.SectionTestimonials,
	model.SectionPricing,
	model.SectionFAQ,
	model.SectionCTA,
	model.SectionContact,
}

// personalityHeads define which sections lead the page for each
// personality. Urgent surfaces contact paths early; premium leads with
// proof of craft; traditional leads with history.
var personalityHeads = map[model.Personality][]string{
	model.PersonalityUrgent: {
		model.SectionHero, model.SectionEmergency, model.SectionServices,
		model.SectionContact, model.SectionCTA,
	},
	model.PersonalityPremium: {
		model.SectionHero, model.SectionAbout, model.SectionServices,
		model.SectionGallery, model.SectionTestimonials,
	},
	model.PersonalityTraditional: {
		model.SectionHero, model.SectionAbout, model.SectionServices,
		model.SectionTestimonials,
	},
	model.PersonalityReliable: {
		model.SectionHero, model.SectionServices, model.SectionAbout,
	},
}

// orderSections returns the included sections in render order: the
// personality head first, then the standard tail. Sections never appear
// twice and excluded sections never appear at all.
func orderSections(personality model.Personality, included map[string]bool) []string {
	order := make([]string, 0, len(included))
	placed := make(map[string]bool, len(included))

	for _, name := range personalityHeads[personality] {
		if included[name] && !placed[name] {
			order = append(order, name)
			placed[name] = true
		}
	}
	for _, name := range standardOrder {
		if included[name] && !placed[name] {
			order = append(order, name)
			placed[name] = true
		}
	}
	return order
}
