package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jimezsa/jobboard/internal/export"
	"github.com/jimezsa/jobboard/internal/models"
	"gopkg.in/yaml.v3"
)

type ShowCmd struct {
	ID     int64  `arg:"" help:"Job posting id."`
	Format string `help:"Output format: text, json, yaml." enum:"text,json,yaml" default:"text"`
}

func (c *ShowCmd) Run(ctx *Context) error {
	app, err := ctx.Services()
	if err != nil {
		return err
	}
	format := c.Format
	if ctx.JSONOutput {
		format = "json"
	}
	return writeJob(context.Background(), ctx, app, c.ID, format)
}

func showJob(runCtx context.Context, ctx *Context, app *App, id int64) error {
	return writeJob(runCtx, ctx, app, id, "text")
}

func writeJob(runCtx context.Context, ctx *Context, app *App, id int64, format string) error {
	if err := app.Require(RouteDetails + strconv.FormatInt(id, 10)); err != nil {
		return err
	}
	job, err := app.Backend.JobDetails(runCtx, id)
	if err != nil {
		return fmt.Errorf("failed to load job %d: %w", id, err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(job)
	case "yaml":
		enc := yaml.NewEncoder(ctx.Out)
		enc.SetIndent(2)
		if err := enc.Encode(job); err != nil {
			return err
		}
		return enc.Close()
	}

	marks := favoriteMarks(runCtx, ctx, app, []models.JobPosting{job})
	opts := writeOptions(ctx, ctx.Out, OutputFlags{Links: string(export.LinkStyleFull)}, marks)
	return export.WriteDetails(ctx.Out, job, opts)
}
