package geocode

import (
	"fmt"
	"testing"
)

func TestResolve(t *testing.T) {
	g := NewStatic()
	cases := []struct {
		label string
		city  string
		ok    bool
	}{
		{label: "Berlin", city: "Berlin", ok: true},
		{label: "Mitte, Berlin", city: "Berlin", ok: true},
		{label: "Berlin, Mitte", city: "Berlin", ok: true},
		{label: "Köln, Deutschland", city: "Köln", ok: true},
		{label: "koln", city: "Köln", ok: true},
		{label: "  MÜNCHEN ", city: "München", ok: true},
		{label: "Frankfurt am Main", city: "Frankfurt", ok: true},
		{label: "Bergisch Gladbach", city: "Bergisch Gladbach", ok: true},
		{label: "Unknownburg", ok: false},
		{label: "Altstadt, Unknownburg, Nowhere", ok: false},
		{label: "", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			m, ok := g.Resolve(tc.label)
			if ok != tc.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.label, ok, tc.ok)
			}
			if ok && m.City != tc.city {
				t.Fatalf("Resolve(%q) city = %q, want %q", tc.label, m.City, tc.city)
			}
		})
	}
}

func TestGeocodeBerlinCoordinates(t *testing.T) {
	coord, ok := NewStatic().Geocode("Mitte, Berlin")
	if !ok {
		t.Fatalf("Geocode() ok = false")
	}
	if coord.Latitude != 52.52 || coord.Longitude != 13.405 {
		t.Fatalf("Geocode() = %+v, want 52.52,13.405", coord)
	}
}

func TestWholeCountryLabel(t *testing.T) {
	m, ok := NewStatic().Resolve("Deutschland")
	if !ok || !m.CountryWide {
		t.Fatalf("Resolve(Deutschland) = %+v, %v; want country-wide match", m, ok)
	}
	if m.Coordinate != GermanyCentroid {
		t.Fatalf("Coordinate = %+v, want %+v", m.Coordinate, GermanyCentroid)
	}
}

func TestGeocodeAllLimitsBatch(t *testing.T) {
	labels := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		if i%2 == 0 {
			labels = append(labels, "Hamburg")
		} else {
			labels = append(labels, fmt.Sprintf("Nowhere %d", i))
		}
	}

	results, stats := GeocodeAll(NewStatic(), labels)
	if stats.Total != BatchLimit {
		t.Fatalf("Total = %d, want %d", stats.Total, BatchLimit)
	}
	if stats.Successful != 10 || stats.Failed != 10 {
		t.Fatalf("stats = %+v, want 10 successful and 10 failed", stats)
	}
	if len(results) != stats.Successful {
		t.Fatalf("len(results) = %d, want %d", len(results), stats.Successful)
	}
}

func TestCountryCentroid(t *testing.T) {
	if c, ok := CountryCentroid("gb"); !ok || c.Latitude != 54.7023 {
		t.Fatalf("CountryCentroid(gb) = %+v, %v", c, ok)
	}
	if _, ok := CountryCentroid("FR"); ok {
		t.Fatalf("CountryCentroid(FR) ok = true")
	}
}
