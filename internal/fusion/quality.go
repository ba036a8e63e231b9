package fusion

import (
	"math"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// Facet weights sum to 1.0; media and services weigh highest because they
// drive the most visible site sections.
const (
	weightBasicInfo       = 0.15
	weightMedia           = 0.25
	weightServices        = 0.20
	weightReviews         = 0.15
	weightContent         = 0.15
	weightDifferentiation = 0.10
)

// Score grades a fused record per facet (0-100 each) and overall.
// Recomputed whenever ConfirmedFacts changes.
func Score(f model.ConfirmedFacts) model.DataQuality {
	facets := model.FacetScores{
		BasicInfo:       scoreBasicInfo(f),
		Media:           scoreMedia(f),
		Services:        scoreServices(f),
		Reviews:         scoreReviews(f),
		Content:         scoreContent(f),
		Differentiation: scoreDifferentiation(f),
	}

	overall := facets.BasicInfo*weightBasicInfo +
		facets.Media*weightMedia +
		facets.Services*weightServices +
		facets.Reviews*weightReviews +
		facets.Content*weightContent +
		facets.Differentiation*weightDifferentiation
	overall = math.Round(overall*100) / 100

	return model.DataQuality{
		Overall: overall,
		Tier:    model.TierFor(overall),
		Facets:  facets,
	}
}

func scoreBasicInfo(f model.ConfirmedFacts) float64 {
	score := 0.0
	if f.Name != "" {
		score += 20
	}
	if len(f.Description) >= 50 {
		score += 20
	}
	if len(f.Description) >= 150 {
		score += 10
	}
	if f.Phone != "" {
		score += 15
	}
	if f.Address != "" || f.City != "" {
		score += 15
	}
	if f.Hours.Complete() {
		score += 10
	}
	if f.Website != "" {
		score += 10
	}
	return cap100(score)
}

// scoreMedia grows with photo count at diminishing marginal value, plus a
// flat bonus when a logo exists.
func scoreMedia(f model.ConfirmedFacts) float64 {
	score := 0.0
	n := len(f.Photos)
	if n >= 1 {
		score += 30
	}
	if n >= 4 {
		score += 25
	}
	if n >= 10 {
		score += 15
	}
	labeled := 0
	for _, p := range f.Photos {
		if p.Label != "" {
			labeled++
		}
	}
	if labeled >= 1 {
		score += 15
	}
	if f.Logo != "" {
		score += 15
	}
	return cap100(score)
}

func scoreServices(f model.ConfirmedFacts) float64 {
	score := 0.0
	n := len(f.Services)
	if n >= 1 {
		score += 25
	}
	if n >= 3 {
		score += 25
	}
	if n >= 6 {
		score += 20
	}
	if len(f.ServiceArea) > 0 {
		score += 15
	}
	if f.Attr(model.FactAvailability) != "" || f.Hours.Complete() {
		score += 15
	}
	return cap100(score)
}

func scoreReviews(f model.ConfirmedFacts) float64 {
	score := 0.0
	if f.Reviews.Count >= 1 {
		score += 20
	}
	if f.Reviews.Count >= 3 {
		score += 20
	}
	if f.Reviews.Count >= 10 {
		score += 20
	}
	if f.Reviews.Rating >= 4.0 {
		score += 20
	}
	if len(f.Reviews.Highlights) > 0 {
		score += 20
	}
	return cap100(score)
}

func scoreContent(f model.ConfirmedFacts) float64 {
	score := 0.0
	switch {
	case len(f.Description) >= 300:
		score += 40
	case len(f.Description) >= 100:
		score += 25
	case len(f.Description) > 0:
		score += 10
	}
	if f.YearsInBusiness > 0 {
		score += 20
	}
	if len(f.FAQSeeds) > 0 {
		score += 20
	}
	if len(f.Keywords) > 0 {
		score += 20
	}
	return cap100(score)
}

func scoreDifferentiation(f model.ConfirmedFacts) float64 {
	score := 0.0
	if len(f.Differentiators) >= 1 {
		score += 30
	}
	if len(f.Differentiators) >= 3 {
		score += 20
	}
	if len(f.Certifications) > 0 {
		score += 20
	}
	if len(f.Awards) > 0 || f.Attr(model.FactGuarantee) != "" {
		score += 15
	}
	if f.Attr(model.FactPositioning) != "" {
		score += 15
	}
	return cap100(score)
}

func cap100(v float64) float64 {
	return math.Min(100, v)
}
