package variant

import (
	"fmt"

	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

// Section inclusion thresholds.
const (
	galleryMinPhotos      = 4
	testimonialsMinCount  = 3
	galleryMasonryPhotos  = 10
	testimonialCarouselAt = 8
	servicesGridAt        = 6
	servicesCardsAt       = 3
)

// sectionDecision is one row of the per-section decision table result.
type sectionDecision struct {
	include bool
	variant string
	reason  string
}

// DecideSections applies each section type's threshold rule and decision
// table. Deterministic and reproducible: the tables are keyed only on the
// given inputs.
func DecideSections(facts model.ConfirmedFacts, quality model.DataQuality, personality model.Personality, profile industry.Profile) map[string]sectionDecision {
	d := make(map[string]sectionDecision, 12)

	d[model.SectionHero] = decideHero(personality)
	d[model.SectionServices] = decideServices(facts, profile)
	d[model.SectionAbout] = decideAbout(facts)
	d[model.SectionGallery] = decideGallery(facts)
	d[model.SectionTestimonials] = decideTestimonials(facts)
	d[model.SectionFeatures] = decideFeatures(facts, profile)
	d[model.SectionFAQ] = sectionDecision{include: true, variant: "faq-accordion", reason: "industry FAQ set always available"}
	d[model.SectionCTA] = decideCTA(personality)
	d[model.SectionContact] = decideContact(facts)
	d[model.SectionPricing] = decidePricing(facts, profile)
	d[model.SectionProcess] = decideProcess(profile)
	d[model.SectionEmergency] = decideEmergency(facts, personality)

	return d
}

func decideHero(p model.Personality) sectionDecision {
	variant := "hero-standard"
	switch p {
	case model.PersonalityUrgent:
		variant = "hero-urgent"
	case model.PersonalityPremium:
		variant = "hero-premium"
	case model.PersonalityTraditional:
		variant = "hero-classic"
	}
	return sectionDecision{include: true, variant: variant, reason: fmt.Sprintf("personality %s", p)}
}

func decideServices(facts model.ConfirmedFacts, profile industry.Profile) sectionDecision {
	n := len(facts.Services)
	if n == 0 {
		n = len(profile.DefaultServices)
	}
	switch {
	case n >= servicesGridAt:
		return sectionDecision{include: true, variant: "services-grid", reason: fmt.Sprintf("%d services fill a grid", n)}
	case n >= servicesCardsAt:
		return sectionDecision{include: true, variant: "services-cards", reason: fmt.Sprintf("%d services suit cards", n)}
	default:
		return sectionDecision{include: true, variant: "services-list", reason: "few services, detailed list"}
	}
}

func decideAbout(facts model.ConfirmedFacts) sectionDecision {
	if facts.YearsInBusiness > 10 {
		return sectionDecision{include: true, variant: "about-story", reason: "long history worth telling"}
	}
	if facts.Attr(model.FactTeamSize) != "" {
		return sectionDecision{include: true, variant: "about-team", reason: "team size known"}
	}
	return sectionDecision{include: true, variant: "about-standard", reason: "default about treatment"}
}

func decideGallery(facts model.ConfirmedFacts) sectionDecision {
	n := len(facts.Photos)
	if n < galleryMinPhotos {
		return sectionDecision{include: false, reason: fmt.Sprintf("only %d photos, need %d", n, galleryMinPhotos)}
	}
	if n >= galleryMasonryPhotos {
		return sectionDecision{include: true, variant: "gallery-masonry", reason: fmt.Sprintf("%d photos support masonry", n)}
	}
	return sectionDecision{include: true, variant: "gallery-grid", reason: fmt.Sprintf("%d photos fit a grid", n)}
}

func decideTestimonials(facts model.ConfirmedFacts) sectionDecision {
	n := facts.Reviews.Count
	if n < testimonialsMinCount {
		return sectionDecision{include: false, reason: fmt.Sprintf("only %d reviews, need %d", n, testimonialsMinCount)}
	}
	if n >= testimonialCarouselAt {
		return sectionDecision{include: true, variant: "testimonials-carousel", reason: fmt.Sprintf("%d reviews rotate well", n)}
	}
	return sectionDecision{include: true, variant: "testimonials-cards", reason: fmt.Sprintf("%d reviews as cards", n)}
}

func decideFeatures(facts model.ConfirmedFacts, profile industry.Profile) sectionDecision {
	if len(facts.Differentiators) >= 2 || len(facts.Certifications) > 0 || len(profile.TrustSignals) > 0 {
		return sectionDecision{include: true, variant: "features-icons", reason: "differentiators or trust signals available"}
	}
	return sectionDecision{include: false, reason: "nothing distinctive to feature"}
}

func decideCTA(p model.Personality) sectionDecision {
	variant := "cta-standard"
	switch p {
	case model.PersonalityUrgent:
		variant = "cta-emergency"
	case model.PersonalityPremium:
		variant = "cta-quote"
	}
	return sectionDecision{include: true, variant: variant, reason: fmt.Sprintf("personality %s", p)}
}

func decideContact(facts model.ConfirmedFacts) sectionDecision {
	if facts.Coordinates != nil {
		return sectionDecision{include: true, variant: "contact-map", reason: "coordinates available for a map"}
	}
	return sectionDecision{include: true, variant: "contact-simple", reason: "no coordinates"}
}

func decidePricing(facts model.ConfirmedFacts, profile industry.Profile) sectionDecision {
	if facts.Attr(model.FactPricingDisplay) == "transparent" {
		return sectionDecision{include: true, variant: "pricing-table", reason: "owner opted into transparent pricing"}
	}
	if profile.ShowPricing && facts.Attr(model.FactPricingDisplay) == "" {
		return sectionDecision{include: true, variant: "pricing-ranges", reason: "industry customers expect price guidance"}
	}
	return sectionDecision{include: false, reason: "pricing on request"}
}

func decideProcess(profile industry.Profile) sectionDecision {
	if len(profile.ProcessSteps) > 0 {
		return sectionDecision{include: true, variant: "process-steps", reason: "industry defines a process walkthrough"}
	}
	return sectionDecision{include: false, reason: "no process defined for industry"}
}

func decideEmergency(facts model.ConfirmedFacts, p model.Personality) sectionDecision {
	if facts.Attr(model.FactAvailability) == "24-7" || facts.Attr(model.FactEmergency) == "true" || p == model.PersonalityUrgent {
		return sectionDecision{include: true, variant: "emergency-banner", reason: "emergency availability is a selling point"}
	}
	return sectionDecision{include: false, reason: "no emergency offering"}
}
