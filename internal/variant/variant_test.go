package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sitegen-cli/internal/fusion"
	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

func testTable(t *testing.T) *industry.Table {
	t.Helper()
	table, err := industry.Load()
	require.NoError(t, err)
	return table
}

func TestClassifyAnswerWinsOutright(t *testing.T) {
	table := testTable(t)
	plumbing := table.Get("plumbing")

	// Emergency facts would normally classify urgent; the explicit style
	// answer overrides everything.
	facts := model.ConfirmedFacts{
		Extra: map[string]string{model.FactAvailability: "24-7"},
	}
	answers := map[string]model.Answer{
		"brand-tone": {QuestionID: "brand-tone", Value: "high-end"},
	}

	p := Classify(facts, model.DataQuality{}, plumbing, answers)
	assert.Equal(t, model.PersonalityPremium, p)
}

func TestClassifyBrandToneAttr(t *testing.T) {
	table := testTable(t)
	facts := model.ConfirmedFacts{
		Extra: map[string]string{model.FactBrandTone: "established"},
	}
	p := Classify(facts, model.DataQuality{}, table.Get("generic"), nil)
	assert.Equal(t, model.PersonalityTraditional, p)
}

func TestClassifyEmergencyHeuristic(t *testing.T) {
	table := testTable(t)
	facts := model.ConfirmedFacts{
		Extra: map[string]string{model.FactAvailability: "24-7"},
	}

	assert.Equal(t, model.PersonalityUrgent,
		Classify(facts, model.DataQuality{}, table.Get("plumbing"), nil))
	assert.Equal(t, model.PersonalityReliable,
		Classify(facts, model.DataQuality{}, table.Get("generic"), nil),
		"non-emergency industries never classify urgent")
}

func TestClassifyEmergencyKeywordInDescription(t *testing.T) {
	table := testTable(t)
	facts := model.ConfirmedFacts{
		Description: "Burst pipe? We answer 24/7 for the whole county.",
	}
	p := Classify(facts, model.DataQuality{}, table.Get("plumbing"), nil)
	assert.Equal(t, model.PersonalityUrgent, p)
}

func TestClassifyPremiumNeedsTwoIndicators(t *testing.T) {
	table := testTable(t)
	generic := table.Get("generic")

	one := model.ConfirmedFacts{Awards: []string{"Best of Springfield"}}
	assert.Equal(t, model.PersonalityReliable,
		Classify(one, model.DataQuality{}, generic, nil),
		"one indicator is not enough")

	two := model.ConfirmedFacts{
		Awards: []string{"Best of Springfield"},
		Extra:  map[string]string{model.FactTargetMarket: "high-end"},
	}
	assert.Equal(t, model.PersonalityPremium,
		Classify(two, model.DataQuality{}, generic, nil))
}

func TestClassifyLongTenure(t *testing.T) {
	table := testTable(t)
	facts := model.ConfirmedFacts{YearsInBusiness: 25}
	p := Classify(facts, model.DataQuality{}, table.Get("generic"), nil)
	assert.Equal(t, model.PersonalityTraditional, p)

	facts.YearsInBusiness = 20
	assert.Equal(t, model.PersonalityReliable,
		Classify(facts, model.DataQuality{}, table.Get("generic"), nil),
		"exactly 20 years is not long tenure")
}

func TestPickTemplateIndustryDefaultWinsTies(t *testing.T) {
	table := testTable(t)
	quality := model.DataQuality{Tier: model.TierMinimal}

	id, _ := PickTemplate(quality, model.PersonalityReliable, table.Get("plumbing"))
	assert.Equal(t, "classic-local", id, "default bonus decides between reliable-capable layouts")
}

func TestPickTemplateDisqualifiesByTier(t *testing.T) {
	table := testTable(t)
	landscaping := table.Get("landscaping") // default template is premium-showcase

	minimal := model.DataQuality{Tier: model.TierMinimal}
	id, _ := PickTemplate(minimal, model.PersonalityPremium, landscaping)
	assert.NotEqual(t, "premium-showcase", id, "showcase layouts need at least moderate data")

	rich := model.DataQuality{Tier: model.TierRich, Facets: model.FacetScores{Media: 85}}
	id, _ = PickTemplate(rich, model.PersonalityPremium, landscaping)
	assert.Equal(t, "premium-showcase", id)
}

func TestDecideSectionsGalleryThresholds(t *testing.T) {
	table := testTable(t)
	profile := table.Get("plumbing")
	photos := func(n int) []model.Photo {
		out := make([]model.Photo, n)
		for i := range out {
			out[i] = model.Photo{URL: "p.jpg"}
		}
		return out
	}

	few := DecideSections(model.ConfirmedFacts{Photos: photos(3)}, model.DataQuality{}, model.PersonalityReliable, profile)
	assert.False(t, few[model.SectionGallery].include)

	grid := DecideSections(model.ConfirmedFacts{Photos: photos(5)}, model.DataQuality{}, model.PersonalityReliable, profile)
	assert.Equal(t, "gallery-grid", grid[model.SectionGallery].variant)

	masonry := DecideSections(model.ConfirmedFacts{Photos: photos(12)}, model.DataQuality{}, model.PersonalityReliable, profile)
	assert.Equal(t, "gallery-masonry", masonry[model.SectionGallery].variant)
}

func TestDecideSectionsTestimonialThresholds(t *testing.T) {
	table := testTable(t)
	profile := table.Get("generic")
	reviews := func(n int) model.ConfirmedFacts {
		return model.ConfirmedFacts{Reviews: model.ReviewSummary{Count: n, Rating: 4.5}}
	}

	d := DecideSections(reviews(2), model.DataQuality{}, model.PersonalityReliable, profile)
	assert.False(t, d[model.SectionTestimonials].include)

	d = DecideSections(reviews(5), model.DataQuality{}, model.PersonalityReliable, profile)
	assert.Equal(t, "testimonials-cards", d[model.SectionTestimonials].variant)

	d = DecideSections(reviews(12), model.DataQuality{}, model.PersonalityReliable, profile)
	assert.Equal(t, "testimonials-carousel", d[model.SectionTestimonials].variant)
}

func TestDecideSectionsPricing(t *testing.T) {
	table := testTable(t)

	// Industry that documents price guidance, owner silent.
	d := DecideSections(model.ConfirmedFacts{}, model.DataQuality{}, model.PersonalityReliable, table.Get("plumbing"))
	assert.Equal(t, "pricing-ranges", d[model.SectionPricing].variant)

	// Explicit opt-in beats the industry default.
	opted := model.ConfirmedFacts{Extra: map[string]string{model.FactPricingDisplay: "transparent"}}
	d = DecideSections(opted, model.DataQuality{}, model.PersonalityReliable, table.Get("plumbing"))
	assert.Equal(t, "pricing-table", d[model.SectionPricing].variant)

	// Explicit opt-out.
	declined := model.ConfirmedFacts{Extra: map[string]string{model.FactPricingDisplay: "on-request"}}
	d = DecideSections(declined, model.DataQuality{}, model.PersonalityReliable, table.Get("plumbing"))
	assert.False(t, d[model.SectionPricing].include)

	// Industry that never shows pricing.
	d = DecideSections(model.ConfirmedFacts{}, model.DataQuality{}, model.PersonalityReliable, table.Get("generic"))
	assert.False(t, d[model.SectionPricing].include)
}

func TestDecideSectionsServicesFallBackToDefaults(t *testing.T) {
	table := testTable(t)

	// No confirmed services: plumbing's five defaults still drive layout.
	d := DecideSections(model.ConfirmedFacts{}, model.DataQuality{}, model.PersonalityReliable, table.Get("plumbing"))
	assert.Equal(t, "services-cards", d[model.SectionServices].variant)

	six := model.ConfirmedFacts{Services: []string{"a", "b", "c", "d", "e", "f"}}
	d = DecideSections(six, model.DataQuality{}, model.PersonalityReliable, table.Get("plumbing"))
	assert.Equal(t, "services-grid", d[model.SectionServices].variant)
}

func TestDecideSectionsEmergencyBanner(t *testing.T) {
	table := testTable(t)
	profile := table.Get("plumbing")

	d := DecideSections(model.ConfirmedFacts{}, model.DataQuality{}, model.PersonalityUrgent, profile)
	assert.True(t, d[model.SectionEmergency].include)

	d = DecideSections(model.ConfirmedFacts{}, model.DataQuality{}, model.PersonalityReliable, profile)
	assert.False(t, d[model.SectionEmergency].include)
}

func TestOrderSectionsUrgentHead(t *testing.T) {
	included := map[string]bool{
		model.SectionHero: true, model.SectionEmergency: true,
		model.SectionServices: true, model.SectionContact: true,
		model.SectionCTA: true, model.SectionAbout: true,
		model.SectionFAQ: true,
	}

	order := orderSections(model.PersonalityUrgent, included)

	assert.Equal(t, []string{
		model.SectionHero, model.SectionEmergency, model.SectionServices,
		model.SectionContact, model.SectionCTA,
		model.SectionAbout, model.SectionFAQ,
	}, order)
}

func TestOrderSectionsSkipsExcluded(t *testing.T) {
	included := map[string]bool{
		model.SectionHero:     true,
		model.SectionServices: true,
		model.SectionContact:  true,
	}

	order := orderSections(model.PersonalityPremium, included)

	assert.Equal(t, []string{model.SectionHero, model.SectionServices, model.SectionContact}, order)
	for _, name := range order {
		assert.True(t, included[name])
	}
}

func TestSelectEndToEnd(t *testing.T) {
	table := testTable(t)
	profile := table.Get("plumbing")

	sources := []model.SourcedFacts{
		{Source: model.SourceUser, Facts: model.PartialFacts{
			model.FactName:         "Acme Plumbing",
			model.FactCity:         "Springfield",
			model.FactServices:     []string{"Drains", "Water Heaters", "Repiping"},
			model.FactAvailability: "24-7",
			model.FactEmergency:    true,
		}},
	}
	facts, _, quality := fusion.Fuse(sources)

	sel := Select(facts, quality, profile, nil)

	assert.Equal(t, model.PersonalityUrgent, sel.Personality)
	assert.Equal(t, "hero-urgent", sel.Sections[model.SectionHero])
	assert.Equal(t, "emergency-banner", sel.Sections[model.SectionEmergency])
	assert.Equal(t, "cta-emergency", sel.Sections[model.SectionCTA])

	require.NotEmpty(t, sel.Order)
	assert.Equal(t, model.SectionHero, sel.Order[0])
	assert.Equal(t, model.SectionEmergency, sel.Order[1])

	// Every ordered section has a variant; excluded ones carry reasoning.
	for _, name := range sel.Order {
		assert.NotEmpty(t, sel.Sections[name], name)
	}
	assert.NotEmpty(t, sel.Reasoning[model.SectionGallery], "exclusions are explained")
	assert.NotContains(t, sel.Sections, model.SectionGallery)
}

func TestSelectDeterministic(t *testing.T) {
	table := testTable(t)
	facts := model.ConfirmedFacts{
		Name:            "Acme",
		YearsInBusiness: 30,
		Services:        []string{"a", "b", "c"},
	}
	quality := model.DataQuality{Tier: model.TierModerate}

	a := Select(facts, quality, table.Get("hvac"), nil)
	b := Select(facts, quality, table.Get("hvac"), nil)
	assert.Equal(t, a, b)
}
