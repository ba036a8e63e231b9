package model

// Personality is the coarse brand-tone classification driving template and
// variant choice.
type Personality string

const (
	PersonalityUrgent      Personality = "urgent"
	PersonalityPremium     Personality = "premium"
	PersonalityTraditional Personality = "traditional"
	PersonalityReliable    Personality = "reliable"
)

// Section names. Industry-specific sections (pricing, process, emergency)
// are only included when the data or industry profile warrants them.
const (
	SectionHero         = "hero"
	SectionServices     = "services"
	SectionAbout        = "about"
	SectionGallery      = "gallery"
	SectionTestimonials = "testimonials"
	SectionFeatures     = "features"
	SectionFAQ          = "faq"
	SectionCTA          = "cta"
	SectionContact      = "contact"
	SectionPricing      = "pricing"
	SectionProcess      = "process"
	SectionEmergency    = "emergency"
)

// VariantSelection is the chosen base template plus a variant per included
// section. Reasoning is for observability only.
type VariantSelection struct {
	TemplateID  string            `json:"template_id"`
	Personality Personality       `json:"personality"`
	Sections    map[string]string `json:"sections"`
	Order       []string          `json:"order"`
	Reasoning   map[string]string `json:"reasoning,omitempty"`
}

// Includes reports whether the section made the cut.
func (v VariantSelection) Includes(section string) bool {
	_, ok := v.Sections[section]
	return ok
}

// SectionMeta records which sources contributed to a populated section and
// the SEO/competitive framing used.
type SectionMeta struct {
	Sources  []string `json:"sources,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Angle    string   `json:"angle,omitempty"`
}

// PopulatedSection is a section variant filled with real or fallback
// content. The content payload shape varies by section type.
type PopulatedSection struct {
	Section   string         `json:"section"`
	VariantID string         `json:"variant_id"`
	Content   map[string]any `json:"content"`
	Meta      SectionMeta    `json:"meta"`
}

// SiteConfig is the finished marketing-site configuration.
type SiteConfig struct {
	SessionID   string             `json:"session_id,omitempty"`
	TemplateID  string             `json:"template_id"`
	Personality Personality        `json:"personality"`
	Order       []string           `json:"order"`
	Sections    []PopulatedSection `json:"sections"`
	Quality     DataQuality        `json:"quality"`
}
