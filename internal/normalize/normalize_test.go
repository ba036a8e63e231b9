package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sitegen-cli/internal/model"
)

func TestNormalizeProfile(t *testing.T) {
	src := model.RawSource{
		Kind: model.SourceProfile,
		Profile: &model.ProfileRecord{
			Name:        "Acme Plumbing",
			Description: "  Trusted local plumbers.  ",
			Categories:  []string{"Plumber", "Contractor"},
			Services:    []string{"Drain Cleaning", "plumber"},
			Photos:      []model.ProfilePhoto{{URL: "a.jpg", Label: "van"}, {URL: ""}},
			LogoURL:     "logo.png",
			Rating:      4.6,
			ReviewCount: 31,
			Hours:       map[string][]string{"Monday": {"09:00-17:00"}, "sunday": {}},
			Attributes:  map[string]any{"24_7": true, "licensed": true, "parking": true},
			Phone:       "555-0100",
			City:        "Springfield",
			Latitude:    39.78,
			Longitude:   -89.65,
		},
	}

	out := Normalize(src)
	require.Equal(t, model.SourceProfile, out.Source)
	facts := out.Facts

	assert.Equal(t, "Acme Plumbing", facts[model.FactName])
	assert.Equal(t, "Trusted local plumbers.", facts[model.FactDescription])
	// Services and categories merge, deduped case-insensitively.
	assert.Equal(t, []string{"Drain Cleaning", "plumber", "Contractor"}, facts[model.FactServices])

	photos := facts[model.FactPhotos].([]model.Photo)
	require.Len(t, photos, 1, "empty URLs dropped")
	assert.Equal(t, "van", photos[0].Label)

	hours := facts[model.FactHours].(model.WeekHours)
	assert.Equal(t, []string{"09:00-17:00"}, hours["monday"])
	assert.NotContains(t, hours, "sunday", "empty periods dropped")

	assert.Equal(t, "24-7", facts[model.FactAvailability])
	assert.Equal(t, true, facts[model.FactEmergency])
	assert.Equal(t, []string{"licensed"}, facts[model.FactCertifications])
	assert.NotContains(t, facts, "parking", "unknown attributes ignored")

	coords := facts[model.FactCoordinates].(model.LatLng)
	assert.InDelta(t, 39.78, coords.Lat, 0.001)
}

func TestNormalizePlace(t *testing.T) {
	src := model.RawSource{
		Kind: model.SourcePlace,
		Place: &model.PlaceRecord{
			Photos:      []string{"x.jpg", "", "y.jpg"},
			Rating:      4.2,
			ReviewCount: 8,
			PriceLevel:  3,
			OpeningHours: []string{
				"Monday: 9:00 AM - 5:00 PM",
				"Tuesday: Closed",
				"Wednesday: Open 24 hours",
				"garbage line",
			},
		},
	}

	facts := Normalize(src).Facts

	photos := facts[model.FactPhotos].([]model.Photo)
	assert.Len(t, photos, 2)

	hours := facts[model.FactHours].(model.WeekHours)
	assert.Contains(t, hours, "monday")
	assert.NotContains(t, hours, "tuesday", "closed days dropped")
	assert.Equal(t, []string{"00:00-24:00"}, hours["wednesday"])

	assert.Equal(t, "premium", facts[model.FactPricingTier])

	reviews := facts[model.FactReviews].(model.ReviewSummary)
	assert.Equal(t, 8, reviews.Count)
}

func TestNormalizePlacePriceLevels(t *testing.T) {
	budget := Normalize(model.RawSource{Kind: model.SourcePlace, Place: &model.PlaceRecord{PriceLevel: 1}}).Facts
	assert.Equal(t, "budget", budget[model.FactPricingTier])

	mid := Normalize(model.RawSource{Kind: model.SourcePlace, Place: &model.PlaceRecord{PriceLevel: 2}}).Facts
	assert.NotContains(t, mid, model.FactPricingTier, "mid price levels assert nothing")
}

func TestNormalizeSearch(t *testing.T) {
	src := model.RawSource{
		Kind: model.SourceSearch,
		Search: &model.SearchRecord{
			Competitors:   []model.Competitor{{Name: "Rival Rooter"}},
			PeopleAlsoAsk: []model.QA{{Question: "How much does drain cleaning cost?", Answer: "Usually $100-$300."}},
			Keywords:      []string{"plumber springfield", "drain cleaning"},
			Snippets: []string{
				"short one",
				"Acme Plumbing has served Springfield homeowners with honest, same-day plumbing repairs for years.",
			},
		},
	}

	facts := Normalize(src).Facts

	comps := facts[model.FactCompetitors].([]model.Competitor)
	assert.Equal(t, "Rival Rooter", comps[0].Name)

	faqs := facts[model.FactFAQSeeds].([]model.QA)
	require.Len(t, faqs, 1)

	assert.Equal(t, []string{"plumber springfield", "drain cleaning"}, facts[model.FactKeywords])

	desc := facts[model.FactDescription].(string)
	assert.Contains(t, desc, "same-day plumbing repairs", "longest substantial snippet becomes description")
}

func TestNormalizeNilPayload(t *testing.T) {
	out := Normalize(model.RawSource{Kind: model.SourceProfile})
	assert.Equal(t, model.SourceProfile, out.Source)
	assert.Empty(t, out.Facts, "nil payload yields empty facts, not an error")
}

func TestNormalizeAnswers(t *testing.T) {
	src := model.RawSource{
		Kind: model.SourceUser,
		Answers: map[string]any{
			model.FactYearsInBusiness: 12,
			model.FactServices:        []any{"Drains", "Water Heaters"},
			model.FactAvailability:    "24-7",
			"unknown_key":             "ignored",
		},
	}

	facts := Normalize(src).Facts

	assert.Equal(t, 12, facts[model.FactYearsInBusiness])
	assert.Equal(t, []string{"Drains", "Water Heaters"}, facts[model.FactServices])
	assert.Equal(t, "24-7", facts[model.FactAvailability])
}

func TestAll(t *testing.T) {
	out := All([]model.RawSource{
		{Kind: model.SourceProfile, Profile: &model.ProfileRecord{Name: "Acme"}},
		{Kind: model.SourcePlace, Place: &model.PlaceRecord{Rating: 4.0, ReviewCount: 2}},
	})
	require.Len(t, out, 2)
	assert.Equal(t, model.SourceProfile, out[0].Source)
	assert.Equal(t, model.SourcePlace, out[1].Source)
}
