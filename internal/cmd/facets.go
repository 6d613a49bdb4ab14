package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jimezsa/jobboard/internal/facets"
)

type FacetsCmd struct {
	Category  string `arg:"" optional:"" help:"Category: countries, skills, contract-types, contract-times, work-locations, companies, locations, languages. Empty lists all."`
	Country   string `help:"Country code scoping the country-specific lists."`
	Timeframe int    `help:"Postings from the last N weeks." default:"1"`
	Search    string `help:"Only options containing this text (accents ignored)."`
	Bundle    bool   `help:"Fetch every category with one filter-options request."`
}

func parseCategory(name string) (facets.Category, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	for _, category := range facets.All {
		if strings.ToLower(string(category)) == norm {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown option category %q", name)
}

func (c *FacetsCmd) Run(ctx *Context) error {
	categories := facets.All
	if strings.TrimSpace(c.Category) != "" {
		category, err := parseCategory(c.Category)
		if err != nil {
			return err
		}
		categories = []facets.Category{category}
	}

	app, err := ctx.Services()
	if err != nil {
		return err
	}
	if err := app.Require(RouteJobs); err != nil {
		return err
	}

	country := strings.ToUpper(strings.TrimSpace(c.Country))
	if country == "" {
		country = strings.ToUpper(ctx.Config.DefaultCountry)
	}

	stop := ctx.UI.StartIndicator("Loading options")
	if c.Bundle {
		app.Facets.LoadBundle(context.Background(), country, c.Timeframe)
	} else {
		app.Facets.LoadAll(context.Background(), country, c.Timeframe)
	}
	stop()

	result := make(map[facets.Category][]string, len(categories))
	for _, category := range categories {
		if app.Facets.Status(category) == facets.Failed {
			ctx.UI.Warnf("Could not load %s.", category)
		}
		result[category] = app.Facets.Search(category, c.Search)
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, category := range categories {
		if len(categories) > 1 {
			_, _ = fmt.Fprintf(ctx.Out, "%s:\n", category)
		}
		for _, item := range result[category] {
			if len(categories) > 1 {
				_, _ = fmt.Fprint(ctx.Out, "  ")
			}
			_, _ = fmt.Fprintln(ctx.Out, item)
		}
	}
	return nil
}
