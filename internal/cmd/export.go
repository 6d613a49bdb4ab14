package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jimezsa/jobboard/internal/export"
)

type ExportCmd struct {
	FilterFlags

	Format string `arg:"" help:"Export format: csv or json." enum:"csv,json"`
	Dir    string `help:"Directory to write the export into (default: export_dir from config)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	state, err := c.State(ctx.Config)
	if err != nil {
		return err
	}

	app, err := ctx.Services()
	if err != nil {
		return err
	}
	if err := app.Require(RouteJobs); err != nil {
		return err
	}

	dir := c.Dir
	if strings.TrimSpace(dir) == "" {
		dir = ctx.Config.ExportDir
	}

	stop := ctx.UI.StartIndicator(fmt.Sprintf("Exporting %s", strings.ToUpper(c.Format)))
	result, err := app.Exporter.Run(context.Background(), export.Request{
		Filters: state,
		Format:  c.Format,
		Dir:     dir,
	})
	stop()
	if err != nil {
		return err
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"path": result.Path, "bytes": result.Bytes})
	}
	ctx.UI.Successf("Exported %d bytes to %s", result.Bytes, ctx.UI.LinkText(result.Path))
	return nil
}
