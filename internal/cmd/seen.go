package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jimezsa/jobboard/internal/export"
	"github.com/jimezsa/jobboard/internal/seen"
)

// SeenCmd compares saved job lists by posting id, outside of any backend call.
type SeenCmd struct {
	Diff   SeenDiffCmd   `cmd:"" help:"List postings in --new that are missing from --seen."`
	Update SeenUpdateCmd `cmd:"" help:"Add postings from --input to the seen history."`
}

type SeenDiffCmd struct {
	OutputFlags

	New   string `name:"new" required:"" help:"Saved jobs JSON to check."`
	Seen  string `name:"seen" required:"" help:"Seen history JSON. A missing file counts as empty."`
	Stats bool   `name:"stats" help:"Print comparison stats to stderr."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" required:"" help:"Seen history JSON. A missing file counts as empty."`
	Input string `name:"input" required:"" help:"Saved jobs JSON to merge into the history."`
	Dest  string `name:"dest" help:"Where to write the merged history (default: overwrite --seen)."`
	Stats bool   `name:"stats" help:"Print merge stats to stderr."`
}

func (c *SeenDiffCmd) Run(ctx *Context) error {
	fresh, err := seen.ReadJobs(c.New)
	if err != nil {
		return fmt.Errorf("read --new: %w", err)
	}
	history, err := seen.ReadJobsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	unseen, stats := seen.Diff(fresh, history)

	outputPath := c.path()
	format, err := resolveFormat(ctx, c.OutputFlags, outputPath)
	if err != nil {
		return err
	}
	w, closeOut, err := openOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	if err := export.WriteJobs(w, unseen, format, writeOptions(ctx, w, c.OutputFlags, nil)); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	if c.Stats {
		return writeSeenStats(ctx, map[string]int{
			"new":     stats.TotalNew,
			"seen":    stats.TotalSeen,
			"skipped": stats.InvalidSkipped(),
			"unseen":  stats.Unseen,
		}, "summary: new=%d seen=%d skipped=%d unseen=%d\n",
			stats.TotalNew, stats.TotalSeen, stats.InvalidSkipped(), stats.Unseen)
	}
	return nil
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	history, err := seen.ReadJobsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	input, err := seen.ReadJobs(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	dest := c.Dest
	if dest == "" {
		dest = c.Seen
	}
	merged, stats := seen.Merge(history, input)
	if err := seen.WriteJobs(dest, merged); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	ctx.UI.Successf("Seen history now holds %d posting(s).", stats.TotalOut)

	if c.Stats {
		return writeSeenStats(ctx, map[string]int{
			"seen":    stats.TotalSeen,
			"input":   stats.TotalInput,
			"skipped": stats.InvalidSkipped(),
			"added":   stats.Added,
			"total":   stats.TotalOut,
		}, "summary: seen=%d input=%d skipped=%d added=%d total=%d\n",
			stats.TotalSeen, stats.TotalInput, stats.InvalidSkipped(), stats.Added, stats.TotalOut)
	}
	return nil
}

func writeSeenStats(ctx *Context, fields map[string]int, format string, args ...any) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Err)
		return enc.Encode(fields)
	}
	_, err := fmt.Fprintf(ctx.Err, format, args...)
	return err
}
