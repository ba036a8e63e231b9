// Package fusion merges normalized facts from independent, unreliable
// sources into one confidence-annotated record and grades its quality.
package fusion

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// PhotoCap bounds accumulated photos across all sources.
const PhotoCap = 24

// CorroborationBonus is added once when more than one source supplies the
// same fact, capped at 1.0.
const CorroborationBonus = 0.1

// fused tracks one fact through the merge.
type fused struct {
	value   any
	conf    float64
	sources []model.SourceKind
}

// Fuse merges normalized facts by source priority, mines the fused
// description for implicit facts, and computes confidence plus quality.
// Deterministic and idempotent for fixed inputs; malformed optional fields
// are treated as absent, never fatal.
func Fuse(sources []model.SourcedFacts) (model.ConfirmedFacts, model.ConfidenceMap, model.DataQuality) {
	ordered := make([]model.SourcedFacts, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Source.MergeRank() < ordered[j].Source.MergeRank()
	})

	merged := make(map[string]*fused)
	var photos []model.Photo
	photoSeen := make(map[string]bool)
	photoSources := make(map[model.SourceKind]bool)

	for _, src := range ordered {
		base := src.Source.BaseConfidence()
		for key, value := range src.Facts {
			if key == model.FactPhotos {
				// Photos accumulate rather than overwrite: more photos are
				// strictly better. Higher-priority sources contribute first.
				if batch, ok := value.([]model.Photo); ok {
					for _, p := range batch {
						if len(photos) >= PhotoCap {
							break
						}
						if p.URL == "" || photoSeen[p.URL] {
							continue
						}
						photoSeen[p.URL] = true
						photos = append(photos, p)
						photoSources[src.Source] = true
					}
				}
				continue
			}

			entry, exists := merged[key]
			if !exists {
				merged[key] = &fused{value: value, conf: base, sources: []model.SourceKind{src.Source}}
				continue
			}
			// Last-writer-wins by priority: the earlier (higher-priority)
			// value stands; this source only corroborates.
			entry.sources = append(entry.sources, src.Source)
			entry.conf = math.Max(entry.conf, base)
		}
	}

	if len(photos) > 0 {
		conf := 0.0
		kinds := make([]model.SourceKind, 0, len(photoSources))
		for k := range photoSources {
			conf = math.Max(conf, k.BaseConfidence())
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i].MergeRank() < kinds[j].MergeRank() })
		merged[model.FactPhotos] = &fused{value: photos, conf: conf, sources: kinds}
	}

	mineDescription(merged)

	confidence := make(model.ConfidenceMap, len(merged))
	for key, entry := range merged {
		conf := entry.conf
		if len(entry.sources) > 1 {
			conf = math.Min(1.0, conf+CorroborationBonus)
		}
		confidence[key] = conf
	}

	facts := project(merged, confidence)
	quality := Score(facts)

	zap.L().Debug("fusion: record fused",
		zap.Int("facts", len(confidence)),
		zap.Int("photos", len(facts.Photos)),
		zap.Float64("quality", quality.Overall),
		zap.String("tier", string(quality.Tier)),
	)

	return facts, confidence, quality
}

// project builds the typed record from the merged map. A value that fails
// its type check is dropped along with its confidence entry.
func project(merged map[string]*fused, confidence model.ConfidenceMap) model.ConfirmedFacts {
	facts := model.ConfirmedFacts{}

	getString := func(key string) string {
		entry, ok := merged[key]
		if !ok {
			return ""
		}
		s, ok := entry.value.(string)
		if !ok {
			delete(confidence, key)
			return ""
		}
		return s
	}
	getStrings := func(key string) []string {
		entry, ok := merged[key]
		if !ok {
			return nil
		}
		vals, ok := entry.value.([]string)
		if !ok {
			delete(confidence, key)
			return nil
		}
		return vals
	}
	getInt := func(key string) int {
		entry, ok := merged[key]
		if !ok {
			return 0
		}
		switch n := entry.value.(type) {
		case int:
			return n
		case float64:
			return int(n)
		default:
			delete(confidence, key)
			return 0
		}
	}

	facts.Name = getString(model.FactName)
	facts.Description = getString(model.FactDescription)
	facts.Services = getStrings(model.FactServices)
	facts.Logo = getString(model.FactLogo)
	facts.Certifications = getStrings(model.FactCertifications)
	facts.ServiceArea = getStrings(model.FactServiceArea)
	facts.YearsInBusiness = getInt(model.FactYearsInBusiness)
	facts.Differentiators = getStrings(model.FactDifferentiators)
	facts.Phone = getString(model.FactPhone)
	facts.Email = getString(model.FactEmail)
	facts.Website = getString(model.FactWebsite)
	facts.Address = getString(model.FactAddress)
	facts.City = getString(model.FactCity)
	facts.State = getString(model.FactState)
	facts.Keywords = getStrings(model.FactKeywords)
	facts.Awards = getStrings(model.FactAwards)

	if entry, ok := merged[model.FactPhotos]; ok {
		if photos, ok := entry.value.([]model.Photo); ok {
			facts.Photos = photos
		} else {
			delete(confidence, model.FactPhotos)
		}
	}
	if entry, ok := merged[model.FactReviews]; ok {
		if rs, ok := entry.value.(model.ReviewSummary); ok {
			facts.Reviews = rs
		} else {
			delete(confidence, model.FactReviews)
		}
	}
	if entry, ok := merged[model.FactHours]; ok {
		if h, ok := entry.value.(model.WeekHours); ok {
			facts.Hours = h
		} else {
			delete(confidence, model.FactHours)
		}
	}
	if entry, ok := merged[model.FactCoordinates]; ok {
		if ll, ok := entry.value.(model.LatLng); ok {
			facts.Coordinates = &ll
		} else {
			delete(confidence, model.FactCoordinates)
		}
	}
	if entry, ok := merged[model.FactFAQSeeds]; ok {
		if qas, ok := entry.value.([]model.QA); ok {
			facts.FAQSeeds = qas
		} else {
			delete(confidence, model.FactFAQSeeds)
		}
	}
	if entry, ok := merged[model.FactCompetitors]; ok {
		if comps, ok := entry.value.([]model.Competitor); ok {
			facts.Competitors = comps
		} else {
			delete(confidence, model.FactCompetitors)
		}
	}

	// Soft attributes: everything else lands in Extra as strings so the
	// question flow and variant selection can read learned attributes.
	for key, entry := range merged {
		if _, typed := typedKeys[key]; typed {
			continue
		}
		if _, tracked := confidence[key]; !tracked {
			continue
		}
		if facts.Extra == nil {
			facts.Extra = make(map[string]string)
		}
		switch v := entry.value.(type) {
		case string:
			facts.Extra[key] = v
		case bool:
			if v {
				facts.Extra[key] = "true"
			} else {
				facts.Extra[key] = "false"
			}
		case int:
			facts.Extra[key] = fmt.Sprintf("%d", v)
		default:
			facts.Extra[key] = fmt.Sprintf("%v", v)
		}
	}

	return facts
}

// typedKeys is the set of fact keys projected into typed fields.
var typedKeys = map[string]struct{}{
	model.FactName: {}, model.FactDescription: {}, model.FactServices: {},
	model.FactPhotos: {}, model.FactLogo: {}, model.FactReviews: {},
	model.FactHours: {}, model.FactCertifications: {}, model.FactServiceArea: {},
	model.FactYearsInBusiness: {}, model.FactDifferentiators: {},
	model.FactPhone: {}, model.FactEmail: {}, model.FactWebsite: {},
	model.FactAddress: {}, model.FactCity: {}, model.FactState: {},
	model.FactCoordinates: {}, model.FactFAQSeeds: {}, model.FactCompetitors: {},
	model.FactKeywords: {}, model.FactAwards: {},
}
