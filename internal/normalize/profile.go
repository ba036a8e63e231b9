package normalize

import (
	"strings"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// profileAttrFacts maps known profile attribute keys onto canonical facts.
// Attribute bags vary wildly between listings; unknown keys are ignored.
var profileAttrFacts = map[string]string{
	"24_7":                    model.FactAvailability,
	"open_24_hours":           model.FactAvailability,
	"emergency_service":       model.FactEmergency,
	"emergency":               model.FactEmergency,
	"licensed":                model.FactCertifications,
	"insured":                 model.FactCertifications,
	"certified":               model.FactCertifications,
	"years_in_business":       model.FactYearsInBusiness,
	"guarantee":               model.FactGuarantee,
	"satisfaction_guaranteed": model.FactGuarantee,
}

func fromProfile(p *model.ProfileRecord) model.PartialFacts {
	facts := model.PartialFacts{}

	if name, ok := toString(p.Name); ok {
		facts[model.FactName] = name
	}
	if desc, ok := toString(p.Description); ok {
		facts[model.FactDescription] = desc
	}

	services := append(cleanStrings(p.Services), cleanStrings(p.Categories)...)
	if len(services) > 0 {
		facts[model.FactServices] = dedupeFold(services)
	}

	if photos := profilePhotos(p.Photos); len(photos) > 0 {
		facts[model.FactPhotos] = photos
	}
	if logo, ok := toString(p.LogoURL); ok {
		facts[model.FactLogo] = logo
	}

	if p.ReviewCount > 0 || p.Rating > 0 || len(p.ReviewHighlights) > 0 {
		facts[model.FactReviews] = model.ReviewSummary{
			Count:      p.ReviewCount,
			Rating:     p.Rating,
			Highlights: cleanStrings(p.ReviewHighlights),
		}
	}

	if hours := profileHours(p.Hours); len(hours) > 0 {
		facts[model.FactHours] = hours
	}

	if phone, ok := toString(p.Phone); ok {
		facts[model.FactPhone] = phone
	}
	if site, ok := toString(p.Website); ok {
		facts[model.FactWebsite] = site
	}
	if addr, ok := toString(p.Address); ok {
		facts[model.FactAddress] = addr
	}
	if city, ok := toString(p.City); ok {
		facts[model.FactCity] = city
	}
	if state, ok := toString(p.State); ok {
		facts[model.FactState] = state
	}
	if len(p.ServiceArea) > 0 {
		facts[model.FactServiceArea] = cleanStrings(p.ServiceArea)
	}
	if p.Latitude != 0 || p.Longitude != 0 {
		facts[model.FactCoordinates] = model.LatLng{Lat: p.Latitude, Lng: p.Longitude}
	}
	if p.YearsInBusiness > 0 {
		facts[model.FactYearsInBusiness] = p.YearsInBusiness
	}

	applyProfileAttributes(facts, p.Attributes)

	return facts
}

// applyProfileAttributes folds the free-form attribute bag into facts.
// Boolean attributes only assert facts when true; a false attribute says
// nothing about the business.
func applyProfileAttributes(facts model.PartialFacts, attrs map[string]any) {
	var certs []string
	for key, raw := range attrs {
		factKey, known := profileAttrFacts[strings.ToLower(key)]
		if !known {
			continue
		}
		switch factKey {
		case model.FactAvailability:
			if b, ok := toBool(raw); ok && b {
				facts[model.FactAvailability] = "24-7"
				facts[model.FactEmergency] = true
			}
		case model.FactEmergency:
			if b, ok := toBool(raw); ok && b {
				facts[model.FactEmergency] = true
			}
		case model.FactCertifications:
			if b, ok := toBool(raw); ok && b {
				certs = append(certs, strings.ReplaceAll(strings.ToLower(key), "_", " "))
			} else if s, ok := toString(raw); ok {
				certs = append(certs, s)
			}
		case model.FactYearsInBusiness:
			if _, exists := facts[model.FactYearsInBusiness]; !exists {
				if n, ok := toInt(raw); ok && n > 0 {
					facts[model.FactYearsInBusiness] = n
				}
			}
		case model.FactGuarantee:
			if b, ok := toBool(raw); ok && b {
				facts[model.FactGuarantee] = "yes"
			} else if s, ok := toString(raw); ok {
				facts[model.FactGuarantee] = s
			}
		}
	}
	if len(certs) > 0 {
		facts[model.FactCertifications] = dedupeFold(certs)
	}
}

func profilePhotos(in []model.ProfilePhoto) []model.Photo {
	out := make([]model.Photo, 0, len(in))
	for _, p := range in {
		url, ok := toString(p.URL)
		if !ok {
			continue
		}
		out = append(out, model.Photo{URL: url, Label: strings.TrimSpace(p.Label)})
	}
	return out
}

// profileHours lowercases day keys and drops empty or malformed periods.
func profileHours(in map[string][]string) model.WeekHours {
	if len(in) == 0 {
		return nil
	}
	out := model.WeekHours{}
	for day, periods := range in {
		day = strings.ToLower(strings.TrimSpace(day))
		if day == "" {
			continue
		}
		cleaned := cleanStrings(periods)
		if len(cleaned) > 0 {
			out[day] = cleaned
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// dedupeFold removes case-insensitive duplicates preserving first spelling.
func dedupeFold(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
