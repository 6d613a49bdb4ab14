package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jimezsa/jobboard/internal/models"
)

var facetPaths = map[string]string{
	"countries":     "countries",
	"contractTypes": "contract-types",
	"contractTimes": "contract-times",
	"workLocations": "work-locations",
	"companies":     "companies",
	"locations":     "locations",
	"skills":        "skills",
	"languages":     "languages",
}

// FacetScope narrows a facet list to a country and posting window.
type FacetScope struct {
	CountryCode      string
	TimeframeInWeeks int
}

func (s FacetScope) values() url.Values {
	values := url.Values{}
	setNonEmpty(values, "countryCode", s.CountryCode)
	timeframe := s.TimeframeInWeeks
	if timeframe < 1 {
		timeframe = 1
	}
	values.Set("timeframeInWeeks", strconv.Itoa(timeframe))
	return values
}

// Facet loads the distinct values of one filter category.
func (c *Client) Facet(ctx context.Context, category string, scope FacetScope) ([]string, error) {
	path, ok := facetPaths[category]
	if !ok {
		return nil, fmt.Errorf("unknown filter category %q", category)
	}

	var query url.Values
	if category != "countries" {
		query = scope.values()
	}
	resp, err := c.api.Get(ctx, jobsPath+"/"+path, query)
	if err != nil {
		return nil, err
	}

	var items []string
	if err := resp.DecodeJSON(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", category, err)
	}
	return compact(items), nil
}

// FilterOptions loads every category in one request.
func (c *Client) FilterOptions(ctx context.Context, scope FacetScope) (models.FilterOptions, error) {
	var options models.FilterOptions
	resp, err := c.api.Get(ctx, jobsPath+"/filter-options", scope.values())
	if err != nil {
		return options, err
	}
	if err := resp.DecodeJSON(&options); err != nil {
		return options, fmt.Errorf("decode filter options: %w", err)
	}
	options.Countries = compact(options.Countries)
	options.ContractTypes = compact(options.ContractTypes)
	options.ContractTimes = compact(options.ContractTimes)
	options.WorkLocations = compact(options.WorkLocations)
	options.Companies = compact(options.Companies)
	options.Locations = compact(options.Locations)
	options.Skills = compact(options.Skills)
	options.Languages = compact(options.Languages)
	return options, nil
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
