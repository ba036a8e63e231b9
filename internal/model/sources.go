package model

// SourceKind identifies the provenance of a set of facts.
type SourceKind string

const (
	SourceUser     SourceKind = "user"
	SourceInferred SourceKind = "inferred"
	SourceProfile  SourceKind = "profile"
	SourcePlace    SourceKind = "place"
	SourceSearch   SourceKind = "search"
	SourceMined    SourceKind = "mined"
	SourceLibrary  SourceKind = "library"
)

// BaseConfidence returns the trust tier assigned to facts from this source.
// User answers are ground truth; everything else degrades by provider.
func (k SourceKind) BaseConfidence() float64 {
	switch k {
	case SourceUser:
		return 1.0
	case SourceInferred, SourceProfile:
		return 0.8
	case SourcePlace:
		return 0.6
	case SourceMined:
		return 0.5
	case SourceSearch:
		return 0.4
	default:
		return 0.0
	}
}

// mergeRank orders sources for the fusion pass. Lower rank wins first.
var mergeRank = map[SourceKind]int{
	SourceUser:     0,
	SourceInferred: 1,
	SourceProfile:  2,
	SourcePlace:    3,
	SourceSearch:   4,
	SourceMined:    5,
}

// MergeRank returns the fusion priority for the source (lower merges first).
// Unknown sources sort last.
func (k SourceKind) MergeRank() int {
	if r, ok := mergeRank[k]; ok {
		return r
	}
	return 99
}

// RawSource is a tagged union over the external provider payloads. Exactly
// one of the pointer fields matching Kind is expected to be set; a nil
// payload normalizes to an empty fact set rather than an error.
type RawSource struct {
	Kind    SourceKind      `json:"kind"`
	Profile *ProfileRecord  `json:"profile,omitempty"`
	Place   *PlaceRecord    `json:"place,omitempty"`
	Search  *SearchRecord   `json:"search,omitempty"`
	Answers map[string]any  `json:"answers,omitempty"`
}

// ProfileRecord is a sparse business-profile payload (GBP-style).
type ProfileRecord struct {
	Name             string              `json:"name,omitempty"`
	Description      string              `json:"description,omitempty"`
	Categories       []string            `json:"categories,omitempty"`
	Services         []string            `json:"services,omitempty"`
	Photos           []ProfilePhoto      `json:"photos,omitempty"`
	LogoURL          string              `json:"logo_url,omitempty"`
	Rating           float64             `json:"rating,omitempty"`
	ReviewCount      int                 `json:"review_count,omitempty"`
	ReviewHighlights []string            `json:"review_highlights,omitempty"`
	Hours            map[string][]string `json:"hours,omitempty"`
	Attributes       map[string]any      `json:"attributes,omitempty"`
	Phone            string              `json:"phone,omitempty"`
	Website          string              `json:"website,omitempty"`
	Address          string              `json:"address,omitempty"`
	City             string              `json:"city,omitempty"`
	State            string              `json:"state,omitempty"`
	ServiceArea      []string            `json:"service_area,omitempty"`
	Latitude         float64             `json:"latitude,omitempty"`
	Longitude        float64             `json:"longitude,omitempty"`
	YearsInBusiness  int                 `json:"years_in_business,omitempty"`
}

// ProfilePhoto is a photo entry with an optional context label.
type ProfilePhoto struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// PlaceRecord is a sparse places-API payload.
type PlaceRecord struct {
	Photos           []string `json:"photos,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	ReviewCount      int      `json:"review_count,omitempty"`
	ReviewHighlights []string `json:"review_highlights,omitempty"`
	ReviewSentiment  string   `json:"review_sentiment,omitempty"`
	PriceLevel       int      `json:"price_level,omitempty"`
	OpeningHours     []string `json:"opening_hours,omitempty"` // weekday_text style, "Monday: 9:00 AM – 5:00 PM"
	PopularTimes     []string `json:"popular_times,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Address          string   `json:"address,omitempty"`
	Latitude         float64  `json:"latitude,omitempty"`
	Longitude        float64  `json:"longitude,omitempty"`
}

// SearchRecord is a sparse search-results payload.
type SearchRecord struct {
	Competitors   []Competitor `json:"competitors,omitempty"`
	PeopleAlsoAsk []QA         `json:"people_also_ask,omitempty"`
	Keywords      []string     `json:"keywords,omitempty"`
	Snippets      []string     `json:"snippets,omitempty"`
}

// Competitor is a competitor surfaced by the search source.
type Competitor struct {
	Name    string `json:"name"`
	Snippet string `json:"snippet,omitempty"`
}

// QA is a question/answer pair (PAA entries, industry FAQ sets).
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
