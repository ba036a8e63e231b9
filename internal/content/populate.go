// Package content fills a variant selection with real business facts,
// falling back through the industry content library and, optionally, LLM
// generation. Population is total: every included section renders with no
// empty required field regardless of how sparse the fused record is.
package content

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/sitegen-cli/internal/enrich"
	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

// Populator renders populated sections for one business.
type Populator struct {
	Profile   industry.Profile
	Generator enrich.Generator
}

// generated holds the copy produced by the parallel enrichment pass.
type generated struct {
	about        string
	serviceBlurb string
}

// Populate renders the final site configuration from the selection and the
// fused record. LLM enrichment runs in parallel per field and any failure
// degrades to the deterministic library fallback.
func (p *Populator) Populate(ctx context.Context, sessionID string, sel model.VariantSelection, facts model.ConfirmedFacts, quality model.DataQuality) model.SiteConfig {
	vars := templateVars(facts, p.Profile)
	gen := p.generateCopy(ctx, facts, vars)

	sections := make([]model.PopulatedSection, 0, len(sel.Order))
	for _, name := range sel.Order {
		variantID, ok := sel.Sections[name]
		if !ok {
			continue
		}
		sections = append(sections, p.buildSection(name, variantID, sel.Personality, facts, vars, gen))
	}

	return model.SiteConfig{
		SessionID:   sessionID,
		TemplateID:  sel.TemplateID,
		Personality: sel.Personality,
		Order:       sel.Order,
		Sections:    sections,
		Quality:     quality,
	}
}

// generateCopy runs the enrichable fields concurrently. Each goroutine owns
// exactly one field, so no locking is needed.
func (p *Populator) generateCopy(ctx context.Context, facts model.ConfirmedFacts, vars map[string]string) generated {
	aboutFallback := p.aboutFallback(facts, vars)
	blurbFallback := fill(p.Profile.Content.ServiceBlurb, vars)
	if blurbFallback == "" {
		blurbFallback = fmt.Sprintf("%s offers dependable %s services.", vars["business_name"], vars["industry"])
	}

	out := generated{about: aboutFallback, serviceBlurb: blurbFallback}
	if p.Generator == nil {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.about = enrich.Text(gctx, p.Generator, p.aboutPrompt(facts, vars), aboutFallback)
		return nil
	})
	g.Go(func() error {
		prompt := fmt.Sprintf(
			"Write one sentence introducing the services of %s, a %s business serving %s.",
			vars["business_name"], vars["industry"], vars["service_area"],
		)
		out.serviceBlurb = enrich.Text(gctx, p.Generator, prompt, blurbFallback)
		return nil
	})
	g.Wait() //nolint:errcheck // goroutines never return errors; fallbacks absorb failures
	return out
}

func (p *Populator) aboutFallback(facts model.ConfirmedFacts, vars map[string]string) string {
	if facts.Description != "" {
		return facts.Description
	}
	if about := fill(p.Profile.Content.About, vars); about != "" {
		return about
	}
	return fmt.Sprintf("%s serves %s with professional %s services.",
		vars["business_name"], vars["service_area"], vars["industry"])
}

func (p *Populator) aboutPrompt(facts model.ConfirmedFacts, vars map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a 2-3 sentence about section for %s, a %s business serving %s.",
		vars["business_name"], vars["industry"], vars["service_area"])
	if facts.YearsInBusiness > 0 {
		fmt.Fprintf(&b, " In business %d years.", facts.YearsInBusiness)
	}
	if len(facts.Differentiators) > 0 {
		fmt.Fprintf(&b, " Known for: %s.", strings.Join(facts.Differentiators, ", "))
	}
	if len(facts.Certifications) > 0 {
		fmt.Fprintf(&b, " Credentials: %s.", strings.Join(facts.Certifications, ", "))
	}
	return b.String()
}

func (p *Populator) buildSection(name, variantID string, personality model.Personality, facts model.ConfirmedFacts, vars map[string]string, gen generated) model.PopulatedSection {
	s := model.PopulatedSection{
		Section:   name,
		VariantID: variantID,
		Content:   map[string]any{},
	}

	switch name {
	case model.SectionHero:
		s.Content = p.heroContent(personality, vars)
		s.Meta = model.SectionMeta{Keywords: p.keywords(facts), Angle: p.angle(facts)}
	case model.SectionServices:
		items := consolidateServices(facts, p.Profile)
		s.Content["blurb"] = gen.serviceBlurb
		s.Content["items"] = items
		s.Meta.Sources = factSources(len(facts.Services) > 0, "services")
	case model.SectionAbout:
		s.Content["body"] = gen.about
		if facts.YearsInBusiness > 0 {
			s.Content["years_in_business"] = facts.YearsInBusiness
		}
		if len(facts.Certifications) > 0 {
			s.Content["certifications"] = facts.Certifications
		}
		s.Meta.Sources = factSources(facts.Description != "", "description")
	case model.SectionGallery:
		s.Content["photos"] = facts.Photos
	case model.SectionTestimonials:
		s.Content["rating"] = facts.Reviews.Rating
		s.Content["count"] = facts.Reviews.Count
		if len(facts.Reviews.Highlights) > 0 {
			s.Content["highlights"] = facts.Reviews.Highlights
		}
	case model.SectionFeatures:
		s.Content["items"] = p.featureItems(facts)
	case model.SectionFAQ:
		s.Content["items"] = mergeFAQs(facts.FAQSeeds, p.Profile.FAQs)
	case model.SectionCTA:
		cta := p.ctaFor(personality)
		s.Content["headline"] = fill(cta.Headline, vars)
		s.Content["button"] = fill(cta.Button, vars)
	case model.SectionContact:
		s.Content = contactContent(facts)
	case model.SectionPricing:
		s.Content["tier"] = facts.Attr(model.FactPricingTier)
		s.Content["note"] = "Contact us for a detailed estimate."
	case model.SectionProcess:
		s.Content["steps"] = p.Profile.ProcessSteps
	case model.SectionEmergency:
		banner := p.Profile.Content.EmergencyBanner
		if banner.Headline == "" {
			banner = industry.CTA{Headline: "Available 24/7 for emergencies", Button: "Call Now"}
		}
		s.Content["headline"] = fill(banner.Headline, vars)
		s.Content["button"] = fill(banner.Button, vars)
		if facts.Phone != "" {
			s.Content["phone"] = facts.Phone
		}
	}

	return s
}

// heroContent picks personality-keyed headline copy with a reliable-keyed
// fallback, then a hard literal.
func (p *Populator) heroContent(personality model.Personality, vars map[string]string) map[string]any {
	headline := pickByPersonality(p.Profile.Content.HeroHeadlines, personality)
	if headline == "" {
		headline = "{business_name} is here to help"
	}
	sub := pickByPersonality(p.Profile.Content.HeroSubheadlines, personality)
	if sub == "" {
		sub = "Serving {service_area} with pride."
	}
	cta := p.ctaFor(personality)

	return map[string]any{
		"headline":    fill(headline, vars),
		"subheadline": fill(sub, vars),
		"cta": map[string]string{
			"headline": fill(cta.Headline, vars),
			"button":   fill(cta.Button, vars),
		},
	}
}

func (p *Populator) ctaFor(personality model.Personality) industry.CTA {
	if cta, ok := p.Profile.Content.CTAs[string(personality)]; ok {
		return cta
	}
	if cta, ok := p.Profile.Content.CTAs[string(model.PersonalityReliable)]; ok {
		return cta
	}
	return industry.CTA{Headline: "Ready to get started?", Button: "Get a Free Quote"}
}

func (p *Populator) featureItems(facts model.ConfirmedFacts) []string {
	seen := make(map[string]bool)
	var items []string
	for _, list := range [][]string{facts.Differentiators, facts.Certifications, p.Profile.TrustSignals} {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, item)
		}
	}
	return items
}

// keywords prefers mined search keywords, falling back to the industry set.
func (p *Populator) keywords(facts model.ConfirmedFacts) []string {
	if len(facts.Keywords) > 0 {
		return facts.Keywords
	}
	return p.Profile.Keywords
}

// angle notes the competitive framing when competitor data is available.
func (p *Populator) angle(facts model.ConfirmedFacts) string {
	if len(facts.Competitors) == 0 {
		return ""
	}
	return fmt.Sprintf("differentiate against %d local competitors", len(facts.Competitors))
}

func contactContent(facts model.ConfirmedFacts) map[string]any {
	out := map[string]any{}
	if facts.Phone != "" {
		out["phone"] = facts.Phone
	}
	if facts.Email != "" {
		out["email"] = facts.Email
	}
	if facts.Address != "" {
		out["address"] = facts.Address
	}
	if len(facts.Hours) > 0 {
		out["hours"] = facts.Hours
	}
	if facts.Coordinates != nil {
		out["coordinates"] = facts.Coordinates
	}
	if len(out) == 0 {
		out["note"] = "Reach out through our contact form."
	}
	return out
}

func pickByPersonality(m map[string]string, personality model.Personality) string {
	if v, ok := m[string(personality)]; ok {
		return v
	}
	// Fixed fallback order keeps population deterministic.
	for _, p := range []model.Personality{
		model.PersonalityReliable, model.PersonalityTraditional,
		model.PersonalityPremium, model.PersonalityUrgent,
	} {
		if v, ok := m[string(p)]; ok {
			return v
		}
	}
	return ""
}

func factSources(confirmed bool, key string) []string {
	if confirmed {
		return []string{key}
	}
	return nil
}
