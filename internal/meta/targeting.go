package meta

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TargetingSpec is the structured targeting object serialized into the
// ad-set creation request.
type TargetingSpec struct {
	GeoLocations GeoLocations `json:"geo_locations"`
	AgeMin       int          `json:"age_min"`
	AgeMax       int          `json:"age_max"`
	Genders      []int        `json:"genders,omitempty"`
}

type GeoLocations struct {
	Countries []string `json:"countries"`
}

const (
	defaultAgeMin = 18
	defaultAgeMax = 65

	genderMale   = 1
	genderFemale = 2
)

// countryCodes maps lower-cased country names to ISO 3166-1 alpha-2 codes.
// Static on purpose: the lookup must not be mutable at runtime.
var countryCodes = map[string]string{
	"egypt":                "EG",
	"usa":                  "US",
	"united states":        "US",
	"america":              "US",
	"uk":                   "GB",
	"united kingdom":       "GB",
	"england":              "GB",
	"saudi arabia":         "SA",
	"uae":                  "AE",
	"united arab emirates": "AE",
	"germany":              "DE",
	"france":               "FR",
	"spain":                "ES",
	"italy":                "IT",
	"netherlands":          "NL",
	"canada":               "CA",
	"australia":            "AU",
	"india":                "IN",
	"brazil":               "BR",
	"mexico":               "MX",
	"japan":                "JP",
	"china":                "CN",
	"turkey":               "TR",
	"poland":               "PL",
	"sweden":               "SE",
	"switzerland":          "CH",
	"austria":              "AT",
	"belgium":              "BE",
	"portugal":             "PT",
	"ireland":              "IE",
	"south africa":         "ZA",
	"nigeria":              "NG",
	"kenya":                "KE",
	"morocco":              "MA",
	"jordan":               "JO",
	"kuwait":               "KW",
	"qatar":                "QA",
	"bahrain":              "BH",
	"oman":                 "OM",
	"lebanon":              "LB",
	"indonesia":            "ID",
	"philippines":          "PH",
	"singapore":            "SG",
	"malaysia":             "MY",
	"thailand":             "TH",
	"vietnam":              "VN",
	"south korea":          "KR",
	"argentina":            "AR",
	"chile":                "CL",
	"colombia":             "CO",
	"norway":               "NO",
	"denmark":              "DK",
	"finland":              "FI",
	"greece":               "GR",
	"israel":               "IL",
	"new zealand":          "NZ",
	"pakistan":             "PK",
	"bangladesh":           "BD",
	"russia":               "RU",
	"ukraine":              "UA",
}

var ageRangeRe = regexp.MustCompile(`(\d{1,2})\s*[-–]\s*(\d{1,2})`)

// BuildTargeting derives a targeting spec from the free-text brief fields.
// Pure: no I/O, deterministic given its inputs.
//
// Locations come from a comma-separated list; known country names map to
// ISO2 codes, tokens already two characters long pass through upper-cased,
// and anything else is dropped. An empty result falls back to
// defaultCountry. Age parses "NN-NN" (hyphen or en-dash), defaulting to
// 18-65. Gender restricts only on an explicit male/female answer.
func BuildTargeting(brief map[string]string, defaultCountry string) TargetingSpec {
	spec := TargetingSpec{
		GeoLocations: GeoLocations{Countries: parseCountries(brief["target_locations"], defaultCountry)},
		AgeMin:       defaultAgeMin,
		AgeMax:       defaultAgeMax,
	}

	if m := ageRangeRe.FindStringSubmatch(brief["age_range"]); m != nil {
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		spec.AgeMin = min
		spec.AgeMax = max
	}

	switch strings.ToLower(strings.TrimSpace(brief["gender"])) {
	case "male", "men":
		spec.Genders = []int{genderMale}
	case "female", "women":
		spec.Genders = []int{genderFemale}
	}

	return spec
}

func parseCountries(locations, defaultCountry string) []string {
	var countries []string
	for _, token := range strings.Split(locations, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if code, ok := countryCodes[token]; ok {
			countries = append(countries, code)
			continue
		}
		if len(token) == 2 {
			countries = append(countries, strings.ToUpper(token))
		}
		// unrecognized names are dropped
	}
	if len(countries) == 0 {
		countries = []string{defaultCountry}
	}
	return countries
}

// ToMinorUnits converts a decimal currency amount to integer cents. Rounding
// is half away from zero on the third decimal digit, applied consistently.
func ToMinorUnits(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, strconv.ErrSyntax
	}
	neg := strings.HasPrefix(amount, "-")
	amount = strings.TrimPrefix(amount, "-")

	intPart := amount
	fracPart := ""
	if idx := strings.Index(amount, "."); idx >= 0 {
		intPart, fracPart = amount[:idx], amount[idx+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, err
	}

	for len(fracPart) < 3 {
		fracPart += "0"
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}

	cents := whole*100 +
		int64(fracPart[0]-'0')*10 +
		int64(fracPart[1]-'0')
	if fracPart[2] >= '5' {
		cents++
	}
	if neg {
		cents = -cents
	}
	return cents, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
}

// FormatTimestamp normalizes a date/time string to RFC 3339. On parse
// failure the input passes through unchanged; a malformed value is then
// rejected by the Graph API at ad-set creation, which surfaces as a normal
// step failure.
func FormatTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.RFC3339)
		}
	}
	return s
}
