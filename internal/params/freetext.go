package params

import (
	"regexp"
	"strings"

	"github.com/taperedworks/enquiry-tracker/constants"
)

var (
	// One label-anchored pattern per canonical parameter: "<Name>:? <rest of line>".
	labelPatterns = buildLabelPatterns()

	leadingEmphasisRe = regexp.MustCompile(`^\*+\s*`)
	locationPrefixRe  = regexp.MustCompile(`(?i)^\s*of Project Location:?\*?\s*`)
	notProvidedRe     = regexp.MustCompile(`(?i)not\s+provided|not\s+found|none`)
	ukPostcodeAreaRe  = regexp.MustCompile(`([A-Z]{1,2})[0-9]`)
)

func buildLabelPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(constants.ParameterNames))
	for _, p := range constants.ParameterNames {
		patterns[string(p)] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(string(p)) + `:?\s*(.*?)(?:\n|$)`)
	}
	return patterns
}

// FromFreeText scans label-anchored lines of an analysis blob for every canonical
// parameter. Missing labels resolve to the sentinel; the call never fails.
func FromFreeText(text string) Set {
	s := New()
	for _, p := range constants.ParameterNames {
		name := string(p)

		value := constants.NotFound
		if m := labelPatterns[name].FindStringSubmatch(text); m != nil {
			value = strings.TrimSpace(m[1])
		}
		value = leadingEmphasisRe.ReplaceAllString(value, "")

		switch p {
		case constants.TaperedInsulation:
			value = MapInsulationCategory(value)
		case constants.PostCode:
			value = NormalizePostCode(value)
		}

		if value == "" {
			value = constants.NotFound
		}
		s[name] = value
	}
	return s
}

// MapInsulationCategory folds a specific insulation product code or trade name into
// its category header. Matching is case-insensitive and substring in either direction;
// the first category in table order wins. Unknown values pass through unchanged.
func MapInsulationCategory(value string) string {
	if value == "" || value == constants.NotFound {
		return value
	}
	lower := strings.ToLower(value)
	for _, cat := range constants.InsulationCategories {
		for _, product := range cat.Products {
			p := strings.ToLower(product)
			if strings.Contains(lower, p) || strings.Contains(p, lower) {
				return cat.Name
			}
		}
	}
	return value
}

// NormalizePostCode reduces a free-text postcode answer to the UK postcode area
// letters ("SW1A 1AA" -> "SW"). Explicit not-provided phrasing normalizes to the
// NotProvided sentinel; values with no postcode-shaped substring are kept as cleaned.
func NormalizePostCode(value string) string {
	cleaned := strings.TrimSpace(locationPrefixRe.ReplaceAllString(value, ""))
	if notProvidedRe.MatchString(cleaned) {
		return constants.NotProvided
	}
	if m := ukPostcodeAreaRe.FindStringSubmatch(strings.ToUpper(cleaned)); m != nil {
		return m[1]
	}
	return cleaned
}
