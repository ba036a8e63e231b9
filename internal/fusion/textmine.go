package fusion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// minedConfidence is the trust tier for facts extracted from free text.
const minedConfidence = 0.5

// overwriteCeiling: the mining pass only fills gaps; it never overwrites a
// fact that arrived with this confidence or better.
const overwriteCeiling = 0.7

var yearsRe = regexp.MustCompile(`(?i)(?:over\s+|more than\s+)?(\d{1,3})\+?\s*years?`)

// certificationKeywords are scanned case-insensitively in the description.
// The matched phrase becomes the certification entry.
var certificationKeywords = []string{
	"licensed", "insured", "bonded", "certified", "accredited",
	"bbb accredited", "award-winning", "award winning", "epa certified",
	"master plumber", "master electrician", "factory trained",
}

// mineDescription extracts implicit facts from the fused description:
// years in business from "N years" phrasing and certification/license/award
// keyword matches. Gap-fill only.
func mineDescription(merged map[string]*fused) {
	entry, ok := merged[model.FactDescription]
	if !ok {
		return
	}
	desc, ok := entry.value.(string)
	if !ok || desc == "" {
		return
	}
	lower := strings.ToLower(desc)

	if canMine(merged, model.FactYearsInBusiness) {
		if years := extractYears(desc); years > 0 {
			merged[model.FactYearsInBusiness] = &fused{
				value:   years,
				conf:    minedConfidence,
				sources: []model.SourceKind{model.SourceMined},
			}
		}
	}

	if canMine(merged, model.FactCertifications) {
		var certs []string
		seen := make(map[string]bool)
		for _, kw := range certificationKeywords {
			if strings.Contains(lower, kw) && !seen[kw] {
				seen[kw] = true
				certs = append(certs, kw)
			}
		}
		if len(certs) > 0 {
			merged[model.FactCertifications] = &fused{
				value:   certs,
				conf:    minedConfidence,
				sources: []model.SourceKind{model.SourceMined},
			}
		}
	}
}

// canMine reports whether the fact is absent or weak enough to replace.
func canMine(merged map[string]*fused, key string) bool {
	entry, ok := merged[key]
	if !ok {
		return true
	}
	return entry.conf < overwriteCeiling && entry.conf < minedConfidence
}

// extractYears pulls a years-in-business figure from phrases like
// "serving the area for 12 years". Implausible values are ignored.
func extractYears(desc string) int {
	m := yearsRe.FindStringSubmatch(desc)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 || n > 150 {
		return 0
	}
	return n
}
