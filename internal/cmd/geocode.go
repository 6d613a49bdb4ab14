package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jimezsa/jobboard/internal/geocode"
)

type GeocodeCmd struct {
	Labels []string `arg:"" name:"label" help:"Location labels, e.g. \"Mitte, Berlin\"."`
}

type geocodeRow struct {
	Label     string  `json:"label"`
	Matched   bool    `json:"matched"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

func (c *GeocodeCmd) Run(ctx *Context) error {
	g := geocode.NewStatic()
	labels := c.Labels
	if len(labels) > geocode.BatchLimit {
		ctx.UI.Warnf("Only the first %d labels are resolved.", geocode.BatchLimit)
		labels = labels[:geocode.BatchLimit]
	}

	rows := make([]geocodeRow, 0, len(labels))
	matched := 0
	for _, label := range labels {
		m, ok := g.Resolve(label)
		row := geocodeRow{Label: label, Matched: ok}
		if ok {
			matched++
			row.Address = m.FormattedAddress
			row.Latitude = m.Latitude
			row.Longitude = m.Longitude
		}
		rows = append(rows, row)
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "label\taddress\tlatitude\tlongitude")
	for _, row := range rows {
		if !row.Matched {
			fmt.Fprintf(tw, "%s\t(no match)\t\t\n", row.Label)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\n", row.Label, row.Address, row.Latitude, row.Longitude)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Err, "summary: total=%d successful=%d failed=%d\n", len(rows), matched, len(rows)-matched)
	return nil
}
