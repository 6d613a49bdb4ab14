package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"text/tabwriter"

	"github.com/jimezsa/jobboard/internal/mapview"
	"github.com/jimezsa/jobboard/internal/models"
)

type MapCmd struct {
	Summary  MapSummaryCmd  `cmd:"" default:"1" help:"Locations with posting counts and positions."`
	Location MapLocationCmd `cmd:"" help:"Postings at one location."`
}

type MapScope struct {
	Country   string `help:"Country code." default:"DE"`
	Timeframe int    `help:"Postings from the last N weeks (1-4)." default:"1"`
}

type MapSummaryCmd struct {
	MapScope
}

type MapLocationCmd struct {
	MapScope
	ID int64 `arg:"" help:"Location id from map summary."`
}

// markerRow is the printable form of one map marker.
type markerRow struct {
	LocationID  int64   `json:"locationId"`
	Location    string  `json:"location"`
	Jobs        int     `json:"jobs"`
	Tier        string  `json:"tier"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Approximate bool    `json:"approximate"`
}

func loadMap(ctx *Context, scope MapScope) (*mapview.Controller, error) {
	app, err := ctx.Services()
	if err != nil {
		return nil, err
	}
	if err := app.Require(RouteMap); err != nil {
		return nil, err
	}
	if !slices.Contains(mapview.TimeframeOptions, scope.Timeframe) {
		return nil, mapview.ErrInvalidTimeframe
	}

	controller := mapview.New(app.Backend,
		mapview.WithLogger(ctx.Logger),
		mapview.WithScope(scope.Country, scope.Timeframe),
	)
	stop := ctx.UI.StartIndicator("Loading locations")
	err = controller.Load(context.Background())
	stop()
	if err != nil {
		return nil, err
	}
	return controller, nil
}

func (c *MapSummaryCmd) Run(ctx *Context) error {
	controller, err := loadMap(ctx, c.MapScope)
	if err != nil {
		return err
	}

	markers, stats := controller.Markers()
	rows := make([]markerRow, 0, len(markers))
	for _, m := range markers {
		rows = append(rows, markerRow{
			LocationID:  m.Group.LocationID,
			Location:    m.Group.LocationName,
			Jobs:        m.Group.JobCount,
			Tier:        string(m.Tier),
			Latitude:    m.Position.Latitude,
			Longitude:   m.Position.Longitude,
			Approximate: m.Approximate,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Jobs > rows[j].Jobs
	})

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	view := controller.View()
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tlocation\tjobs\ttier\tposition")
	for _, row := range rows {
		position := fmt.Sprintf("%.4f, %.4f", row.Latitude, row.Longitude)
		if row.Approximate {
			position += " ~"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", row.LocationID, row.Location, row.Jobs, row.Tier, position)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ctx.Err, "summary: country=%s weeks=%d locations=%d placed=%d center=%.4f,%.4f zoom=%d\n",
		view.CountryCode, view.TimeframeInWeeks, len(view.Groups), len(rows),
		view.Center.Latitude, view.Center.Longitude, view.Zoom)
	if stats.Failed > 0 {
		ctx.UI.Warnf("%d location(s) could not be placed.", stats.Failed)
	}
	return nil
}

func (c *MapLocationCmd) Run(ctx *Context) error {
	controller, err := loadMap(ctx, c.MapScope)
	if err != nil {
		return err
	}
	if err := controller.SelectByID(context.Background(), c.ID); err != nil {
		return err
	}

	view := controller.View()
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(view.Jobs)
	}

	_, _ = fmt.Fprintf(ctx.Out, "%s: %d job(s)\n", view.SelectedName, len(view.Jobs))
	return writeLocationJobs(ctx, view.Jobs, view.CountryCode)
}

func writeLocationJobs(ctx *Context, jobs []models.JobPosting, countryCode string) error {
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\ttitle\tcompany\tsalary\tposted")
	for _, job := range jobs {
		posted := ""
		if !job.Created.IsZero() {
			posted = job.Created.Format("02/01/2006")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", job.ID, job.Title, job.CompanyName, mapview.SalaryLabel(job, countryCode), posted)
	}
	return tw.Flush()
}
