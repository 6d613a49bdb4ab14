package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/jobboard/internal/export"
	"github.com/jimezsa/jobboard/internal/ui"
)

// OutputFlags control how a list of postings is written.
type OutputFlags struct {
	Format string `help:"Output format: table, csv, tsv, json, md, yaml." enum:",table,csv,tsv,json,md,yaml" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output string `name:"output" short:"o" help:"Write output to a file."`
	Out    string `name:"out" help:"Alias for --output."`
}

func (o OutputFlags) path() string {
	if o.Output != "" {
		return o.Output
	}
	return o.Out
}

// resolveFormat picks the writer format. Global --json/--plain win, then
// --format, then table for terminals and CSV for pipes and files.
func resolveFormat(ctx *Context, opts OutputFlags, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return export.ParseFormat(opts.Format)
	}
	if outputPath == "" && ui.IsTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

// openOutput returns the destination writer and a close func.
func openOutput(ctx *Context, path string) (io.Writer, func() error, error) {
	if path == "" {
		return ctx.Out, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func writeOptions(ctx *Context, w io.Writer, opts OutputFlags, marks map[int64]bool) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(opts.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && ui.IsTTY(w),
		LinkStyle:    linkStyle,
		Favorites:    marks,
	}
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
