package models

import "strings"

// Countries lists the country codes the board offers, in display order.
var Countries = []string{"DE", "GB", "US", "NL", "BE", "AT", "CH", "NO", "DK"}

var countryNames = map[string]string{
	"DE": "Germany",
	"GB": "United Kingdom",
	"US": "USA",
	"NL": "Netherlands",
	"BE": "Belgium",
	"AT": "Austria",
	"CH": "Switzerland",
	"NO": "Norway",
	"DK": "Denmark",
}

// CountryName returns the display name for code, or code itself when unknown.
func CountryName(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

// FlagEmoji renders a two-letter country code as a regional indicator pair.
func FlagEmoji(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

func CurrencySymbol(code string) string {
	switch strings.ToUpper(code) {
	case "GB":
		return "£"
	case "CH":
		return "CHF"
	case "US":
		return "$"
	case "NO":
		return "NOK"
	case "DK":
		return "DKK"
	default:
		return "€"
	}
}
