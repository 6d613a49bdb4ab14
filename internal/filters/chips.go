package filters

import (
	"fmt"
	"strings"

	"github.com/jimezsa/jobboard/internal/models"
)

// ActiveFilter is one removable filter chip.
type ActiveFilter struct {
	Key   Key
	Label string
}

// ActiveFilters lists the chips for s. The timeframe chip is always present.
func ActiveFilters(s State) []ActiveFilter {
	s = s.normalize()
	weeks := "week"
	if s.TimeframeInWeeks > 1 {
		weeks = "weeks"
	}
	chips := []ActiveFilter{{Key: KeyTimeframe, Label: fmt.Sprintf("%d %s", s.TimeframeInWeeks, weeks)}}

	add := func(key Key, ok bool, label string) {
		if ok {
			chips = append(chips, ActiveFilter{Key: key, Label: label})
		}
	}
	add(KeyCountry, s.CountryCode != "", strings.TrimSpace(models.FlagEmoji(s.CountryCode)+" "+models.CountryName(s.CountryCode)))
	add(KeyTitle, s.Title != "", "Title: "+s.Title)
	add(KeyCompany, s.Company != "", "Company: "+s.Company)
	add(KeyLocation, s.Location != "", "Location: "+s.Location)
	add(KeyContractType, s.ContractType != "", "Contract: "+s.ContractType)
	add(KeyContractTime, s.ContractTime != "", "Time: "+s.ContractTime)
	add(KeyWorkLocation, s.WorkLocation != "", "Work: "+s.WorkLocation)
	add(KeySkills, len(s.Skills) > 0, "Skills: "+summarize(s.Skills))
	add(KeyLanguages, len(s.Languages) > 0, "Languages: "+summarize(s.Languages))
	add(KeyFavorites, s.OnlyFavorites, "Favorites Only")
	return chips
}

func summarize(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return fmt.Sprintf("%d selected", len(items))
}
