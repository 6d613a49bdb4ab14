package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jimezsa/jobboard/internal/config"
	"github.com/jimezsa/jobboard/internal/filters"
)

// FilterFlags are the list filters shared by jobs, browse and export.
type FilterFlags struct {
	Query         string   `name:"query" short:"q" help:"Filter query string, e.g. 'country=DE&skills=Go'. Flags below override it."`
	Country       string   `help:"Country code (DE, GB, US, NL, BE, AT, CH, NO, DK)."`
	Timeframe     int      `help:"Postings from the last N weeks."`
	ContractType  string   `name:"contract-type" help:"Contract type, e.g. permanent or contract."`
	ContractTime  string   `name:"contract-time" help:"Contract time, e.g. full_time or part_time."`
	WorkLocation  string   `name:"work-location" help:"Work location, e.g. remote, hybrid or onsite."`
	Title         string   `help:"Title search."`
	Location      string   `help:"Location name."`
	Company       string   `help:"Company name."`
	Skills        []string `help:"Skills (comma-separated or repeated)."`
	Languages     []string `help:"Languages (comma-separated or repeated)."`
	OnlyFavorites bool     `name:"only-favorites" help:"Only postings you marked as favorite."`
}

// State resolves the flags on top of --query and the configured defaults.
func (f FilterFlags) State(cfg config.Config) (filters.State, error) {
	base := filters.Default()
	if strings.TrimSpace(f.Query) != "" {
		parsed, err := filters.ParseQuery(f.Query)
		if err != nil {
			return filters.Default(), fmt.Errorf("parse --query: %w", err)
		}
		base = parsed
	} else {
		base.CountryCode = cfg.DefaultCountry
		if cfg.DefaultTimeframe > 0 {
			base.TimeframeInWeeks = cfg.DefaultTimeframe
		}
	}

	values := filters.Encode(base)
	set := func(key filters.Key, value string) {
		if strings.TrimSpace(value) != "" {
			values.Set(string(key), value)
		}
	}
	set(filters.KeyCountry, f.Country)
	if f.Timeframe != 0 {
		if f.Timeframe < 0 {
			return filters.Default(), fmt.Errorf("--timeframe must be at least 1")
		}
		values.Set(string(filters.KeyTimeframe), strconv.Itoa(f.Timeframe))
	}
	set(filters.KeyContractType, f.ContractType)
	set(filters.KeyContractTime, f.ContractTime)
	set(filters.KeyWorkLocation, f.WorkLocation)
	set(filters.KeyTitle, f.Title)
	set(filters.KeyLocation, f.Location)
	set(filters.KeyCompany, f.Company)
	set(filters.KeySkills, strings.Join(f.Skills, ","))
	set(filters.KeyLanguages, strings.Join(f.Languages, ","))
	if f.OnlyFavorites {
		values.Set(string(filters.KeyFavorites), "true")
	}
	return filters.Parse(values), nil
}

// withPage applies an explicit --page. Zero keeps the page from --query.
func withPage(s filters.State, page int) (filters.State, error) {
	switch {
	case page < 0:
		return s, fmt.Errorf("--page must be at least 1")
	case page == 0:
		return s, nil
	default:
		return filters.SetPage(page)(s), nil
	}
}
