package model

// Canonical fact keys shared by normalizers, fusion, the question catalog,
// and the content populators. Providers map their own field names onto
// these; adding a provider never adds a key.
const (
	FactName            = "name"
	FactDescription     = "description"
	FactServices        = "services"
	FactPhotos          = "photos"
	FactLogo            = "logo"
	FactReviews         = "reviews"
	FactHours           = "hours"
	FactCertifications  = "certifications"
	FactServiceArea     = "service_area"
	FactYearsInBusiness = "years_in_business"
	FactDifferentiators = "differentiators"
	FactPhone           = "phone"
	FactEmail           = "email"
	FactWebsite         = "website"
	FactAddress         = "address"
	FactCity            = "city"
	FactState           = "state"
	FactCoordinates     = "coordinates"
	FactAvailability    = "availability"
	FactEmergency       = "emergency_service"
	FactPositioning     = "positioning"
	FactPricingTier     = "pricing_tier"
	FactTargetMarket    = "target_market"
	FactBrandTone       = "brand_tone"
	FactPrimaryGoal     = "primary_goal"
	FactTeamSize        = "team_size"
	FactGuarantee       = "guarantee"
	FactPricingDisplay  = "pricing_display"
	FactFAQSeeds        = "faq_seeds"
	FactCompetitors     = "competitors"
	FactKeywords        = "keywords"
	FactAwards          = "awards"
)

// PartialFacts is a sparse bag of canonical facts from a single source.
// Values use the canonical shapes: []Photo for photos, WeekHours for hours,
// ReviewSummary for reviews, []string for list facts, string/int/bool/
// LatLng for scalars.
type PartialFacts map[string]any

// SourcedFacts pairs a normalized fact set with its provenance.
type SourcedFacts struct {
	Source SourceKind   `json:"source"`
	Facts  PartialFacts `json:"facts"`
}

// Photo is one gallery image with an optional context label.
type Photo struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// WeekHours maps lowercase day name to open periods ("09:00-17:00").
type WeekHours map[string][]string

// Complete reports whether at least one day has a complete open period.
func (h WeekHours) Complete() bool {
	for _, periods := range h {
		if len(periods) > 0 {
			return true
		}
	}
	return false
}

// ReviewSummary aggregates review signal across sources.
type ReviewSummary struct {
	Count      int      `json:"count"`
	Rating     float64  `json:"rating"`
	Highlights []string `json:"highlights,omitempty"`
	Sentiment  string   `json:"sentiment,omitempty"`
}

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ConfirmedFacts is the fused, confidence-annotated business record. Built
// fresh per fusion run; never mutated in place.
type ConfirmedFacts struct {
	Name            string        `json:"name,omitempty"`
	Description     string        `json:"description,omitempty"`
	Services        []string      `json:"services,omitempty"`
	Photos          []Photo       `json:"photos,omitempty"`
	Logo            string        `json:"logo,omitempty"`
	Reviews         ReviewSummary `json:"reviews"`
	Hours           WeekHours     `json:"hours,omitempty"`
	Certifications  []string      `json:"certifications,omitempty"`
	ServiceArea     []string      `json:"service_area,omitempty"`
	YearsInBusiness int           `json:"years_in_business,omitempty"`
	Differentiators []string      `json:"differentiators,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	Email           string        `json:"email,omitempty"`
	Website         string        `json:"website,omitempty"`
	Address         string        `json:"address,omitempty"`
	City            string        `json:"city,omitempty"`
	State           string        `json:"state,omitempty"`
	Coordinates     *LatLng       `json:"coordinates,omitempty"`
	FAQSeeds        []QA          `json:"faq_seeds,omitempty"`
	Competitors     []Competitor  `json:"competitors,omitempty"`
	Keywords        []string      `json:"keywords,omitempty"`
	Awards          []string      `json:"awards,omitempty"`

	// Soft attributes learned from answers and inference.
	Extra map[string]string `json:"extra,omitempty"`
}

// Attr returns a soft attribute (availability, positioning, pricing_tier,
// brand_tone, ...) or "" when unknown.
func (f ConfirmedFacts) Attr(key string) string {
	if f.Extra == nil {
		return ""
	}
	return f.Extra[key]
}

// ConfidenceMap maps fact key to a belief score in [0,1]. A fact absent
// from ConfirmedFacts has confidence 0.
type ConfidenceMap map[string]float64

// Get returns the confidence for a fact, 0 when untracked.
func (c ConfidenceMap) Get(key string) float64 {
	return c[key]
}

// Clone returns a copy of the map.
func (c ConfidenceMap) Clone() ConfidenceMap {
	out := make(ConfidenceMap, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
