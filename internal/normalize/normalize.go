// Package normalize adapts each raw external source into the shared
// canonical fact vocabulary. Adding a provider means adding a normalizer
// here; fusion logic never changes.
package normalize

import (
	"strconv"
	"strings"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// Normalize maps a raw provider payload onto the shared PartialFacts shape.
// Pure and total: a nil or unrecognized payload yields an empty fact set so
// a single dead source never disturbs downstream fusion.
func Normalize(src model.RawSource) model.SourcedFacts {
	out := model.SourcedFacts{
		Source: src.Kind,
		Facts:  model.PartialFacts{},
	}

	switch src.Kind {
	case model.SourceProfile:
		if src.Profile != nil {
			out.Facts = fromProfile(src.Profile)
		}
	case model.SourcePlace:
		if src.Place != nil {
			out.Facts = fromPlace(src.Place)
		}
	case model.SourceSearch:
		if src.Search != nil {
			out.Facts = fromSearch(src.Search)
		}
	case model.SourceUser:
		if src.Answers != nil {
			out.Facts = fromAnswers(src.Answers)
		}
	}

	return out
}

// All normalizes every raw source in order.
func All(sources []model.RawSource) []model.SourcedFacts {
	out := make([]model.SourcedFacts, 0, len(sources))
	for _, src := range sources {
		out = append(out, Normalize(src))
	}
	return out
}

// --- tolerant coercion helpers ---

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		i, err := strconv.Atoi(cleaned)
		if err != nil {
			f, err := strconv.ParseFloat(cleaned, 64)
			if err != nil {
				return 0, false
			}
			return int(f), true
		}
		return i, true
	default:
		return 0, false
	}
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
		return false, false
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	default:
		return false, false
	}
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func toStringSlice(v any) ([]string, bool) {
	switch vals := v.(type) {
	case []string:
		return cleanStrings(vals), true
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := toString(item); ok {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
