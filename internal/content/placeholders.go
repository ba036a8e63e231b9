package content

import (
	"strconv"
	"strings"

	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
)

// templateVars builds the substitution set for {placeholder} templates.
// Every placeholder the content library uses gets a value; missing facts get
// serviceable generic defaults so no template ever renders a hole.
func templateVars(facts model.ConfirmedFacts, profile industry.Profile) map[string]string {
	vars := map[string]string{
		"business_name": facts.Name,
		"city":          facts.City,
		"years":         "",
		"service_area":  strings.Join(facts.ServiceArea, ", "),
		"industry":      strings.ToLower(profile.Name),
	}

	if vars["business_name"] == "" {
		vars["business_name"] = "Your Local " + profile.Name + " Team"
	}
	if vars["city"] == "" {
		if len(facts.ServiceArea) > 0 {
			vars["city"] = facts.ServiceArea[0]
		} else {
			vars["city"] = "your area"
		}
	}
	if facts.YearsInBusiness > 0 {
		vars["years"] = strconv.Itoa(facts.YearsInBusiness)
	} else {
		vars["years"] = "many"
	}
	if vars["service_area"] == "" {
		vars["service_area"] = vars["city"]
	}

	return vars
}

// fill substitutes {placeholder} tokens; unknown tokens are dropped rather
// than leaking braces into rendered copy.
func fill(template string, vars map[string]string) string {
	out := template
	for key, val := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	for {
		open := strings.Index(out, "{")
		if open < 0 {
			break
		}
		close := strings.Index(out[open:], "}")
		if close < 0 {
			break
		}
		out = out[:open] + out[open+close+1:]
	}
	return strings.Join(strings.Fields(out), " ")
}
