package mapview

import (
	"fmt"

	"github.com/jimezsa/jobboard/internal/geocode"
	"github.com/jimezsa/jobboard/internal/models"
)

type Tier string

const (
	TierSmall  Tier = "1-5"
	TierMedium Tier = "5+"
	TierLarge  Tier = "10+"
)

// TierFor buckets a location by job count.
func TierFor(jobCount int) Tier {
	switch {
	case jobCount > 10:
		return TierLarge
	case jobCount > 5:
		return TierMedium
	default:
		return TierSmall
	}
}

// Marker is a placeable location. Approximate is set when the position came
// from the geocoder instead of the backend.
type Marker struct {
	Group       models.LocationGroup
	Position    geocode.Coordinate
	Tier        Tier
	Approximate bool
}

func (m Marker) Title() string {
	return fmt.Sprintf("%s - %d jobs", m.Group.LocationName, m.Group.JobCount)
}

// Markers places every summary group. Groups without server coordinates are
// geocoded from their name, subject to geocode.BatchLimit; the rest are
// reported in stats as failed and left out.
func (c *Controller) Markers() ([]Marker, geocode.Stats) {
	view := c.View()

	markers := make([]Marker, 0, len(view.Groups))
	missing := make([]string, 0)
	for _, g := range view.Groups {
		if g.HasCoordinates() {
			markers = append(markers, Marker{
				Group:    g,
				Position: geocode.Coordinate{Latitude: g.Latitude.Value, Longitude: g.Longitude.Value},
				Tier:     TierFor(g.JobCount),
			})
			continue
		}
		missing = append(missing, g.LocationName)
	}
	if len(missing) == 0 || c.geocoder == nil {
		return markers, geocode.Stats{}
	}

	results, stats := geocode.GeocodeAll(c.geocoder, missing)
	placed := make(map[string]geocode.Coordinate, len(results))
	for _, r := range results {
		placed[r.Label] = r.Coordinate
	}
	for _, g := range view.Groups {
		if g.HasCoordinates() {
			continue
		}
		if pos, ok := placed[g.LocationName]; ok {
			markers = append(markers, Marker{Group: g, Position: pos, Tier: TierFor(g.JobCount), Approximate: true})
		}
	}
	c.logger.Debug().Int("total", stats.Total).Int("successful", stats.Successful).Int("failed", stats.Failed).Msg("geocoded locations")
	return markers, stats
}

// SalaryLabel renders the salary line of a posting in a location list.
func SalaryLabel(job models.JobPosting, countryCode string) string {
	symbol := models.CurrencySymbol(countryCode)
	hasMin := job.SalaryMin != nil && *job.SalaryMin != 0
	hasMax := job.SalaryMax != nil && *job.SalaryMax != 0
	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("%s%.2f - %s%.2f", symbol, *job.SalaryMin, symbol, *job.SalaryMax)
	case hasMin:
		return fmt.Sprintf("%s%.2f+", symbol, *job.SalaryMin)
	case hasMax:
		return fmt.Sprintf("Up to %s%.2f", symbol, *job.SalaryMax)
	default:
		return ""
	}
}
