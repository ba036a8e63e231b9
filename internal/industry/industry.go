// Package industry holds the per-industry configuration table: keywords,
// defaults, specializations, trust signals, and the fallback content
// library. The table is immutable, loaded once at startup, and passed by
// reference into pure functions.
package industry

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/sitegen-cli/internal/model"
)

//go:embed industries.yaml
var industriesYAML []byte

// GenericKey is the documented fallback profile for unknown industries.
const GenericKey = "generic"

// Service is a default service entry with a relative demand score used to
// rank consolidated service lists.
type Service struct {
	Name        string `yaml:"name" json:"name"`
	Demand      int    `yaml:"demand" json:"demand"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// CTA is a call-to-action template pair.
type CTA struct {
	Headline string `yaml:"headline" json:"headline"`
	Button   string `yaml:"button" json:"button"`
}

// ProcessStep is one step of an industry's how-we-work section.
type ProcessStep struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

// Content is the templated string library for one industry. Templates use
// {placeholder} substitution: {business_name}, {city}, {years},
// {service_area}, {industry}.
type Content struct {
	HeroHeadlines    map[string]string `yaml:"hero_headlines" json:"hero_headlines"`
	HeroSubheadlines map[string]string `yaml:"hero_subheadlines" json:"hero_subheadlines"`
	About            string            `yaml:"about" json:"about"`
	ServiceBlurb     string            `yaml:"service_blurb" json:"service_blurb"`
	CTAs             map[string]CTA    `yaml:"ctas" json:"ctas"`
	EmergencyBanner  CTA               `yaml:"emergency_banner,omitempty" json:"emergency_banner,omitempty"`
}

// Profile is one industry's full configuration entry.
type Profile struct {
	Key                string        `yaml:"key" json:"key"`
	Name               string        `yaml:"name" json:"name"`
	DefaultTemplate    string        `yaml:"default_template" json:"default_template"`
	DefaultPersonality string        `yaml:"default_personality" json:"default_personality"`
	EmergencyCapable   bool          `yaml:"emergency_capable" json:"emergency_capable"`
	EmergencyKeywords  []string      `yaml:"emergency_keywords,omitempty" json:"emergency_keywords,omitempty"`
	Keywords           []string      `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Specializations    []string      `yaml:"specializations,omitempty" json:"specializations,omitempty"`
	TrustSignals       []string      `yaml:"trust_signals,omitempty" json:"trust_signals,omitempty"`
	DefaultServices    []Service     `yaml:"default_services,omitempty" json:"default_services,omitempty"`
	FAQs               []model.QA    `yaml:"faqs,omitempty" json:"faqs,omitempty"`
	ProcessSteps       []ProcessStep `yaml:"process_steps,omitempty" json:"process_steps,omitempty"`
	ShowPricing        bool          `yaml:"show_pricing" json:"show_pricing"`
	Content            Content       `yaml:"content" json:"content"`
}

// Personality returns the industry's default personality tag.
func (p Profile) Personality() model.Personality {
	if p.DefaultPersonality == "" {
		return model.PersonalityReliable
	}
	return model.Personality(p.DefaultPersonality)
}

// Table is the loaded industry configuration, indexed by key.
type Table struct {
	profiles map[string]Profile
	keys     []string
}

type tableFile struct {
	Industries []Profile `yaml:"industries"`
}

// Load parses the embedded industry table. Call once at startup.
func Load() (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(industriesYAML, &file); err != nil {
		return nil, eris.Wrap(err, "industry: parse table")
	}

	t := &Table{profiles: make(map[string]Profile, len(file.Industries))}
	for _, p := range file.Industries {
		t.profiles[p.Key] = p
		t.keys = append(t.keys, p.Key)
	}

	if _, ok := t.profiles[GenericKey]; !ok {
		return nil, eris.New("industry: table missing generic fallback profile")
	}

	return t, nil
}

// Get returns the profile for the industry key, falling back to the generic
// profile for unknown industries. Never fails.
func (t *Table) Get(key string) Profile {
	if p, ok := t.profiles[key]; ok {
		return p
	}
	return t.profiles[GenericKey]
}

// Known reports whether the key has a dedicated profile.
func (t *Table) Known(key string) bool {
	_, ok := t.profiles[key]
	return ok
}

// Keys lists the configured industry keys in file order.
func (t *Table) Keys() []string {
	return t.keys
}
