package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jimezsa/jobboard/internal/export"
	"github.com/jimezsa/jobboard/internal/filters"
	"github.com/jimezsa/jobboard/internal/models"
	"github.com/jimezsa/jobboard/internal/seen"
)

type JobsCmd struct {
	FilterFlags
	OutputFlags

	Page         int    `help:"Page number (default: page from --query, else 1)."`
	All          bool   `help:"Follow the cursor through every page."`
	Limit        int    `help:"Maximum postings gathered with --all (0 = no limit)."`
	AfterCreated string `name:"after-created" help:"Cursor: creation time of the last posting seen (RFC 3339)."`
	AfterID      int64  `name:"after-id" help:"Cursor: id of the last posting seen."`
	Seen         string `help:"Path to seen jobs JSON file."`
	NewOnly      bool   `help:"Output only unseen jobs (requires --seen)."`
	NewOut       string `help:"Write unseen jobs JSON to a file (requires --seen)."`
	SeenUpdate   bool   `help:"Merge unseen jobs into the --seen file after listing (requires --seen)."`
}

func (c *JobsCmd) validate() error {
	hasSeen := strings.TrimSpace(c.Seen) != ""
	if c.NewOnly && !hasSeen {
		return fmt.Errorf("--new-only requires --seen")
	}
	if strings.TrimSpace(c.NewOut) != "" && !hasSeen {
		return fmt.Errorf("--new-out requires --seen")
	}
	if c.SeenUpdate && !hasSeen {
		return fmt.Errorf("--seen-update requires --seen")
	}
	if (c.AfterCreated == "") != (c.AfterID == 0) {
		return fmt.Errorf("--after-created and --after-id go together")
	}
	if c.All && c.AfterID != 0 {
		return fmt.Errorf("--all starts from the first page; drop --after-created/--after-id")
	}

	outputPath := c.path()
	if pathsEqual(outputPath, c.NewOut) {
		return fmt.Errorf("--new-out path must differ from --output")
	}
	if pathsEqual(outputPath, c.Seen) {
		return fmt.Errorf("--output path must differ from --seen")
	}
	if pathsEqual(c.NewOut, c.Seen) {
		return fmt.Errorf("--new-out path must differ from --seen")
	}
	return nil
}

func (c *JobsCmd) cursor() (models.Cursor, error) {
	if c.AfterID == 0 {
		return models.Cursor{}, nil
	}
	created, err := models.ParseTimestamp(c.AfterCreated)
	if err != nil {
		return models.Cursor{}, fmt.Errorf("parse --after-created: %w", err)
	}
	return models.Cursor{LastCreated: created, LastJobID: c.AfterID, HasNextPage: true}, nil
}

func (c *JobsCmd) Run(ctx *Context) error {
	if err := c.validate(); err != nil {
		return err
	}
	state, err := c.State(ctx.Config)
	if err != nil {
		return err
	}
	state, err = withPage(state, c.Page)
	if err != nil {
		return err
	}
	cursor, err := c.cursor()
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

	runCtx := context.Background()
	stop := ctx.UI.StartIndicator("Loading jobs")
	var page models.PageResult
	switch {
	case c.All:
		var jobs []models.JobPosting
		jobs, err = app.Listing.Collect(runCtx, state, c.Limit)
		page = models.PageResult{Jobs: jobs, TotalCount: len(jobs), TotalPages: 1}
	case cursor.Valid():
		page, err = app.Listing.FetchAfter(runCtx, state, cursor)
	default:
		page, err = app.Listing.Fetch(runCtx, state)
	}
	stop()
	if err != nil {
		return fmt.Errorf("failed to load jobs, retry the command: %w", err)
	}

	var unseenJobs []models.JobPosting
	if strings.TrimSpace(c.Seen) != "" {
		history, err := seen.ReadJobsAllowMissing(c.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		unseenJobs, _ = seen.Diff(page.Jobs, history)
	}
	if strings.TrimSpace(c.NewOut) != "" {
		if err := seen.WriteJobs(c.NewOut, unseenJobs); err != nil {
			return fmt.Errorf("write --new-out: %w", err)
		}
	}

	outputJobs := page.Jobs
	if c.NewOnly {
		outputJobs = unseenJobs
	}

	marks := favoriteMarks(runCtx, ctx, app, outputJobs)
	if err := c.write(ctx, outputJobs, marks); err != nil {
		return err
	}

	if c.SeenUpdate {
		if err := updateSeenHistory(c.Seen, unseenJobs); err != nil {
			return err
		}
	}

	printListSummary(ctx, state, page, len(outputJobs))
	return nil
}

func (c *JobsCmd) write(ctx *Context, jobs []models.JobPosting, marks map[int64]bool) error {
	outputPath := c.path()
	format, err := resolveFormat(ctx, c.OutputFlags, outputPath)
	if err != nil {
		return err
	}
	w, closeFn, err := openOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	defer closeFn()
	return export.WriteJobs(w, jobs, format, writeOptions(ctx, w, c.OutputFlags, marks))
}

// favoriteMarks loads the favorite state of jobs when signed in. Failures
// only cost the heart column.
func favoriteMarks(runCtx context.Context, ctx *Context, app *App, jobs []models.JobPosting) map[int64]bool {
	if !app.Session.IsAuthenticated() || len(jobs) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	if err := app.Favorites.Load(runCtx, ids); err != nil {
		ctx.Logger.Debug().Err(err).Msg("load favorite marks")
	}
	marks := make(map[int64]bool, len(ids))
	for _, id := range ids {
		marks[id] = app.Favorites.IsFavorite(id)
	}
	return marks
}

func updateSeenHistory(seenPath string, inputJobs []models.JobPosting) error {
	history, err := seen.ReadJobsAllowMissing(seenPath)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	merged, _ := seen.Merge(history, inputJobs)
	if err := seen.WriteJobs(seenPath, merged); err != nil {
		return fmt.Errorf("write --seen: %w", err)
	}
	return nil
}

func printListSummary(ctx *Context, state filters.State, page models.PageResult, shown int) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintln(ctx.Err, formatListSummary(state, page, shown))
	if page.Empty() {
		if msg := strings.TrimSpace(page.Message); msg != "" {
			_, _ = fmt.Fprintln(ctx.Err, msg)
		}
		_, _ = fmt.Fprintln(ctx.Err, "No jobs found. Try fewer filters or run without --query and filter flags.")
	}
}

func formatListSummary(state filters.State, page models.PageResult, shown int) string {
	chips := filters.ActiveFilters(state)
	labels := make([]string, 0, len(chips))
	for _, chip := range chips {
		labels = append(labels, chip.Label)
	}

	line := fmt.Sprintf("summary: page=%d/%d shown=%d total=%d filters=[%s]",
		state.Page, max(page.TotalPages, 1), shown, page.TotalCount, strings.Join(labels, "; "))
	if page.FavoriteCount > 0 {
		line += fmt.Sprintf(" favorites=%d", page.FavoriteCount)
	}
	if page.Cursor.HasNextPage && page.Cursor.Valid() {
		line += fmt.Sprintf(" next=--after-created %s --after-id %d",
			page.Cursor.LastCreated.UTC().Format("2006-01-02T15:04:05.999999999Z07:00"), page.Cursor.LastJobID)
	}
	return line
}
