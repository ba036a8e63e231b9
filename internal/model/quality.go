package model

// QualityTier buckets the overall data quality score.
type QualityTier string

const (
	TierMinimal  QualityTier = "minimal"
	TierModerate QualityTier = "moderate"
	TierRich     QualityTier = "rich"
)

// Tier thresholds on the 0-100 overall score.
const (
	ModerateThreshold = 40.0
	RichThreshold     = 70.0
)

// FacetScores breaks data quality down per facet, each 0-100.
type FacetScores struct {
	BasicInfo       float64 `json:"basic_info"`
	Media           float64 `json:"media"`
	Services        float64 `json:"services"`
	Reviews         float64 `json:"reviews"`
	Content         float64 `json:"content"`
	Differentiation float64 `json:"differentiation"`
}

// DataQuality is the derived quality assessment of a ConfirmedFacts record.
// Recomputed whenever the facts change.
type DataQuality struct {
	Overall float64     `json:"overall"`
	Tier    QualityTier `json:"tier"`
	Facets  FacetScores `json:"facets"`
}

// TierFor maps an overall score to its tier.
func TierFor(overall float64) QualityTier {
	switch {
	case overall >= RichThreshold:
		return TierRich
	case overall >= ModerateThreshold:
		return TierModerate
	default:
		return TierMinimal
	}
}
