// Package geocode places location labels on a map without calling an
// external geocoding service.
package geocode

import (
	"strings"

	"github.com/jimezsa/jobboard/internal/textfold"
)

// BatchLimit caps how many labels GeocodeAll processes.
const BatchLimit = 20

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves a free-form location label.
type Geocoder interface {
	Geocode(label string) (Coordinate, bool)
}

// Match is a resolved label. CountryWide is set when the label named the
// whole country rather than a city.
type Match struct {
	Label            string
	City             string
	FormattedAddress string
	CountryWide      bool
	Coordinate
}

type city struct {
	name string
	lat  float64
	lng  float64
}

var countryTokens = map[string]bool{
	"deutschland": true,
	"germany":     true,
}

// GermanyCentroid is used for labels naming the whole country.
var GermanyCentroid = Coordinate{Latitude: 51.1657, Longitude: 10.4515}

var countryCenters = map[string]Coordinate{
	"DE": {Latitude: 51.1657, Longitude: 10.4515},
	"GB": {Latitude: 54.7023, Longitude: -3.2765},
	"US": {Latitude: 39.8283, Longitude: -98.5795},
	"NL": {Latitude: 52.1326, Longitude: 5.2913},
	"BE": {Latitude: 50.8503, Longitude: 4.3517},
	"AT": {Latitude: 47.5162, Longitude: 14.5501},
	"CH": {Latitude: 46.8182, Longitude: 8.2275},
	"NO": {Latitude: 63.0472, Longitude: 10.4405},
	"DK": {Latitude: 56.2639, Longitude: 9.5018},
}

// CountryCentroid returns the map center for a country code.
func CountryCentroid(code string) (Coordinate, bool) {
	c, ok := countryCenters[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Static resolves labels against a fixed table of German cities.
type Static struct {
	index map[string]city
}

func NewStatic() *Static {
	index := make(map[string]city, len(germanCities))
	for _, c := range germanCities {
		index[textfold.Fold(c.name)] = c
	}
	return &Static{index: index}
}

func (s *Static) Geocode(label string) (Coordinate, bool) {
	m, ok := s.Resolve(label)
	return m.Coordinate, ok
}

// Resolve accepts labels such as "Berlin", "Mitte, Berlin" or
// "Köln, Deutschland". The country token is dropped, then the last and the
// second-to-last comma separated parts are tried in that order.
func (s *Static) Resolve(label string) (Match, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Match{}, false
	}
	if countryTokens[textfold.Fold(label)] {
		return Match{
			Label:            label,
			City:             "Germany (Multiple Cities)",
			FormattedAddress: "Germany",
			CountryWide:      true,
			Coordinate:       GermanyCentroid,
		}, true
	}

	parts := make([]string, 0, 3)
	for _, part := range strings.Split(label, ",") {
		part = strings.TrimSpace(part)
		if part == "" || countryTokens[textfold.Fold(part)] {
			continue
		}
		parts = append(parts, part)
	}

	candidates := parts
	if len(parts) >= 2 {
		candidates = []string{parts[len(parts)-1], parts[len(parts)-2]}
	}
	for _, candidate := range candidates {
		if c, ok := s.lookup(candidate); ok {
			return Match{
				Label:            label,
				City:             c.name,
				FormattedAddress: c.name + ", Germany",
				Coordinate:       Coordinate{Latitude: c.lat, Longitude: c.lng},
			}, true
		}
	}
	return Match{Label: label}, false
}

// lookup tries the whole name, then its first word, so "Frankfurt am Main"
// finds Frankfurt.
func (s *Static) lookup(name string) (city, bool) {
	key := textfold.Fold(name)
	if c, ok := s.index[key]; ok {
		return c, true
	}
	if first, _, found := strings.Cut(key, " "); found {
		c, ok := s.index[first]
		return c, ok
	}
	return city{}, false
}

type Stats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Result pairs an input label with its coordinate.
type Result struct {
	Label string
	Coordinate
}

// GeocodeAll resolves at most BatchLimit labels and reports how many
// succeeded. Labels past the limit are ignored.
func GeocodeAll(g Geocoder, labels []string) ([]Result, Stats) {
	if len(labels) > BatchLimit {
		labels = labels[:BatchLimit]
	}
	stats := Stats{Total: len(labels)}
	results := make([]Result, 0, len(labels))
	for _, label := range labels {
		coord, ok := g.Geocode(label)
		if !ok {
			stats.Failed++
			continue
		}
		stats.Successful++
		results = append(results, Result{Label: label, Coordinate: coord})
	}
	return results, stats
}
