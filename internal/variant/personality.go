// Package variant scores and picks a base template plus per-section content
// variants from the fused record, inferred personality, industry, and user
// answers. Selection is deterministic and never fails; unknown industries
// fall back to the generic profile upstream.
package variant

import (
	"strings"

	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

// brandTonePersonality maps the explicit style answer onto a personality.
var brandTonePersonality = map[string]model.Personality{
	"professional":  model.PersonalityReliable,
	"high-end":      model.PersonalityPremium,
	"fast-response": model.PersonalityUrgent,
	"established":   model.PersonalityTraditional,
}

// Premium indicator thresholds.
const (
	premiumMediaScore           = 60.0
	premiumDifferentiationScore = 50.0
	traditionalYears            = 20
)

// Classify derives the coarse personality tag via ordered rule precedence:
// an explicit user answer wins outright; then the industry emergency
// heuristic; then premium indicators (at least two must hold); then long
// tenure; then the industry's documented default.
func Classify(facts model.ConfirmedFacts, quality model.DataQuality, profile industry.Profile, answers map[string]model.Answer) model.Personality {
	if a, ok := answers["brand-tone"]; ok {
		if p, known := brandTonePersonality[strings.ToLower(a.Value)]; known {
			return p
		}
	}
	if tone := facts.Attr(model.FactBrandTone); tone != "" {
		if p, known := brandTonePersonality[strings.ToLower(tone)]; known {
			return p
		}
	}

	if emergencyFocused(facts, profile) {
		return model.PersonalityUrgent
	}

	if premiumIndicators(facts, quality) >= 2 {
		return model.PersonalityPremium
	}

	if facts.YearsInBusiness > traditionalYears {
		return model.PersonalityTraditional
	}

	return profile.Personality()
}

// emergencyFocused applies the industry+emergency-keyword heuristic.
func emergencyFocused(facts model.ConfirmedFacts, profile industry.Profile) bool {
	if !profile.EmergencyCapable {
		return false
	}
	if facts.Attr(model.FactAvailability) == "24-7" || facts.Attr(model.FactEmergency) == "true" {
		return true
	}
	if facts.Attr(model.FactPositioning) == "emergency-focused" {
		return true
	}
	desc := strings.ToLower(facts.Description)
	for _, kw := range profile.EmergencyKeywords {
		if strings.Contains(desc, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// premiumIndicators counts the weighted signals for a premium read.
func premiumIndicators(facts model.ConfirmedFacts, quality model.DataQuality) int {
	n := 0
	if quality.Facets.Media >= premiumMediaScore {
		n++
	}
	if quality.Facets.Differentiation >= premiumDifferentiationScore {
		n++
	}
	if len(facts.Awards) > 0 {
		n++
	}
	if facts.Attr(model.FactTargetMarket) == "high-end" {
		n++
	}
	return n
}
