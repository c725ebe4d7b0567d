package dataset

import "strings"

// stateFixes bridges the newspaper-style abbreviations found in the
// independent restaurant list to census state codes. Keys are matched after
// periods and surrounding whitespace are removed.
var stateFixes = map[string]string{
	"Fla":   "FL",
	"Ill":   "IL",
	"Nev":   "NV",
	"Ind":   "IN",
	"Pa":    "PA",
	"Calif": "CA",
	"Ga":    "GA",
	"Mich":  "MI",
	"Mass":  "MA",
	"Ore":   "OR",
	"Tenn":  "TN",
	"Colo":  "CO",
	"Va":    "VA",
	"Texas": "TX",
}

// NormalizeState maps a free-text state to its two-letter code. Values not in
// the fix table are returned cleaned but otherwise unchanged ("N.Y." -> "NY").
func NormalizeState(raw string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ".", ""))
	if code, ok := stateFixes[cleaned]; ok {
		return code
	}
	return cleaned
}
