package model

import "strconv"

// Count returns the element count of a list-like fact, or 0 for scalars and
// absent facts. Used by declarative suppression predicates.
func (f ConfirmedFacts) Count(key string) int {
	switch key {
	case FactServices:
		return len(f.Services)
	case FactPhotos:
		return len(f.Photos)
	case FactCertifications:
		return len(f.Certifications)
	case FactServiceArea:
		return len(f.ServiceArea)
	case FactDifferentiators:
		return len(f.Differentiators)
	case FactFAQSeeds:
		return len(f.FAQSeeds)
	case FactCompetitors:
		return len(f.Competitors)
	case FactKeywords:
		return len(f.Keywords)
	case FactAwards:
		return len(f.Awards)
	case FactReviews:
		return f.Reviews.Count
	default:
		return 0
	}
}

// StringVal returns a fact's value rendered as a string for equality
// predicates; "" when absent.
func (f ConfirmedFacts) StringVal(key string) string {
	switch key {
	case FactName:
		return f.Name
	case FactDescription:
		return f.Description
	case FactPhone:
		return f.Phone
	case FactEmail:
		return f.Email
	case FactWebsite:
		return f.Website
	case FactAddress:
		return f.Address
	case FactCity:
		return f.City
	case FactState:
		return f.State
	case FactYearsInBusiness:
		if f.YearsInBusiness == 0 {
			return ""
		}
		return strconv.Itoa(f.YearsInBusiness)
	default:
		return f.Attr(key)
	}
}
