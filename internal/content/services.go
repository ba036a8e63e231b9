package content

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// ServiceItem is one consolidated service entry ready for rendering.
type ServiceItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Demand      int    `json:"demand"`
	Confirmed   bool   `json:"confirmed"`
}

// consolidateServices merges confirmed services with the industry defaults.
// Confirmed services lead; industry defaults backfill descriptions and, when
// the confirmed list is thin, supply additional entries. Ordering is demand
// descending with confirmed entries winning ties.
func consolidateServices(facts model.ConfirmedFacts, profile industry.Profile) []ServiceItem {
	byKey := make(map[string]industry.Service, len(profile.DefaultServices))
	for _, s := range profile.DefaultServices {
		byKey[normalizeService(s.Name)] = s
	}

	seen := make(map[string]bool)
	var items []ServiceItem

	for _, name := range facts.Services {
		key := normalizeService(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		item := ServiceItem{Name: titleCaser.String(strings.TrimSpace(name)), Confirmed: true}
		if def, ok := byKey[key]; ok {
			item.Description = def.Description
			item.Demand = def.Demand
		}
		items = append(items, item)
	}

	// Backfill defaults only when the confirmed list cannot carry a section.
	if len(items) < 3 {
		for _, def := range profile.DefaultServices {
			key := normalizeService(def.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, ServiceItem{
				Name:        def.Name,
				Description: def.Description,
				Demand:      def.Demand,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Demand != items[j].Demand {
			return items[i].Demand > items[j].Demand
		}
		return items[i].Confirmed && !items[j].Confirmed
	})

	return items
}

func normalizeService(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
