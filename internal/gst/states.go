package gst

import (
	"regexp"
	"strings"
)

// stateCodes maps the two-digit GSTIN jurisdiction prefix to a state name.
// 28 and 37 both resolve to Andhra Pradesh: 28 is the pre-bifurcation code that
// remains on older registrations, 37 is the code issued after 2014.
var stateCodes = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman and Diu",
	"26": "Dadra and Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
}

var (
	gstinPattern  = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnSACPattern = regexp.MustCompile(`^\d{4,8}$`)
)

// StateName returns the state for a two-digit jurisdiction code.
func StateName(code string) (string, bool) {
	name, ok := stateCodes[code]
	return name, ok
}

// StateCode returns the lowest jurisdiction code registered for a state name.
// Matching ignores case and surrounding whitespace.
func StateCode(name string) (string, bool) {
	want := normalize(name)
	if want == "" {
		return "", false
	}
	best := ""
	for code, state := range stateCodes {
		if normalize(state) == want && (best == "" || code < best) {
			best = code
		}
	}
	return best, best != ""
}

// ValidGSTIN reports whether s has the 15-character GSTIN shape and a known
// jurisdiction prefix.
func ValidGSTIN(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !gstinPattern.MatchString(s) {
		return false
	}
	_, ok := stateCodes[s[:2]]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidHSNSAC reports whether s looks like an HSN or SAC code: 4 to 8 digits.
func ValidHSNSAC(s string) bool {
	return hsnSACPattern.MatchString(strings.TrimSpace(s))
}
