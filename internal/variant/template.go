package variant

import (
	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

// Template is one entry of the small fixed base-template catalog.
type Template struct {
	ID string
	// Personalities this layout was designed for.
	Personalities []model.Personality
	// MinTier is the lowest quality tier the layout still looks good at.
	// Media-heavy layouts degrade badly on sparse data.
	MinTier model.QualityTier
}

// Templates is the fixed catalog, in deterministic scoring order.
var Templates = []Template{
	{ID: "modern-service", Personalities: []model.Personality{model.PersonalityReliable, model.PersonalityUrgent}, MinTier: model.TierMinimal},
	{ID: "emergency-response", Personalities: []model.Personality{model.PersonalityUrgent}, MinTier: model.TierMinimal},
	{ID: "premium-showcase", Personalities: []model.Personality{model.PersonalityPremium}, MinTier: model.TierModerate},
	{ID: "classic-local", Personalities: []model.Personality{model.PersonalityTraditional, model.PersonalityReliable}, MinTier: model.TierMinimal},
}

func tierRank(t model.QualityTier) int {
	switch t {
	case model.TierRich:
		return 2
	case model.TierModerate:
		return 1
	default:
		return 0
	}
}

// PickTemplate scores the catalog against quality tier, personality, and
// industry, returning the winner. Ties break toward the industry's
// documented default template.
func PickTemplate(quality model.DataQuality, personality model.Personality, profile industry.Profile) (string, string) {
	bestID := profile.DefaultTemplate
	bestScore := -1.0

	for _, t := range Templates {
		score := scoreTemplate(t, quality, personality, profile)
		// Strict inequality keeps the industry default on ties because it
		// scores its +2 bonus; equal scores keep the earlier winner, and the
		// loop seeds with the default when everything is disqualified.
		if score > bestScore {
			bestScore = score
			bestID = t.ID
		}
	}

	return bestID, string(personality)
}

func scoreTemplate(t Template, quality model.DataQuality, personality model.Personality, profile industry.Profile) float64 {
	// Disqualify layouts the data cannot carry.
	if tierRank(quality.Tier) < tierRank(t.MinTier) {
		return -1
	}

	score := 1.0
	for _, p := range t.Personalities {
		if p == personality {
			score += 3
			break
		}
	}
	if t.ID == profile.DefaultTemplate {
		score += 2
	}
	// Rich media favors showcase layouts; sparse data favors simpler ones.
	if t.ID == "premium-showcase" && quality.Facets.Media >= 70 {
		score += 1
	}
	if quality.Tier == model.TierMinimal && t.MinTier == model.TierMinimal {
		score += 1
	}
	return score
}
