package cmd

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobboard/internal/export"
)

type FavoritesCmd struct {
	List   FavoritesListCmd   `cmd:"" default:"1" help:"List favorite postings."`
	Add    FavoritesAddCmd    `cmd:"" help:"Add postings to favorites."`
	Remove FavoritesRemoveCmd `cmd:"" help:"Remove postings from favorites."`
	Toggle FavoritesToggleCmd `cmd:"" help:"Flip the favorite mark of one posting."`
	Check  FavoritesCheckCmd  `cmd:"" help:"Report whether postings are favorites."`
}

type FavoritesListCmd struct {
	OutputFlags
}

type FavoritesAddCmd struct {
	IDs []int64 `arg:"" name:"id" help:"Job posting ids."`
}

type FavoritesRemoveCmd struct {
	IDs []int64 `arg:"" name:"id" help:"Job posting ids."`
}

type FavoritesToggleCmd struct {
	ID int64 `arg:"" help:"Job posting id."`
}

type FavoritesCheckCmd struct {
	IDs []int64 `arg:"" name:"id" help:"Job posting ids."`
}

func favoritesApp(ctx *Context) (*App, error) {
	app, err := ctx.Services()
	if err != nil {
		return nil, err
	}
	if err := app.Require(RouteJobs); err != nil {
		return nil, err
	}
	return app, nil
}

func (c *FavoritesListCmd) Run(ctx *Context) error {
	app, err := favoritesApp(ctx)
	if err != nil {
		return err
	}
	jobs, err := app.Favorites.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	marks := make(map[int64]bool, len(jobs))
	for _, job := range jobs {
		marks[job.ID] = true
	}

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
	if err := export.WriteJobs(w, jobs, format, writeOptions(ctx, w, c.OutputFlags, marks)); err != nil {
		return err
	}
	if len(jobs) == 0 {
		ctx.UI.Warnf("No favorites yet. Add one with: jobboard favorites add ID")
	}
	return nil
}

func (c *FavoritesAddCmd) Run(ctx *Context) error {
	app, err := favoritesApp(ctx)
	if err != nil {
		return err
	}
	if err := app.Favorites.Add(context.Background(), c.IDs); err != nil {
		return fmt.Errorf("failed to add favorites: %w", err)
	}
	ctx.UI.Successf("Added %d posting(s) to favorites.", len(c.IDs))
	return nil
}

func (c *FavoritesRemoveCmd) Run(ctx *Context) error {
	app, err := favoritesApp(ctx)
	if err != nil {
		return err
	}
	if err := app.Favorites.Remove(context.Background(), c.IDs); err != nil {
		return fmt.Errorf("failed to remove favorites: %w", err)
	}
	ctx.UI.Successf("Removed %d posting(s) from favorites.", len(c.IDs))
	return nil
}

func (c *FavoritesToggleCmd) Run(ctx *Context) error {
	app, err := favoritesApp(ctx)
	if err != nil {
		return err
	}
	runCtx := context.Background()
	if err := app.Favorites.Load(runCtx, []int64{c.ID}); err != nil {
		return err
	}
	fav, err := app.Favorites.Toggle(runCtx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}
	if fav {
		ctx.UI.Successf("Added %d to favorites.", c.ID)
	} else {
		ctx.UI.Successf("Removed %d from favorites.", c.ID)
	}
	return nil
}

func (c *FavoritesCheckCmd) Run(ctx *Context) error {
	app, err := favoritesApp(ctx)
	if err != nil {
		return err
	}
	if err := app.Favorites.Load(context.Background(), c.IDs); err != nil {
		return err
	}
	for _, id := range c.IDs {
		mark := "no"
		if app.Favorites.IsFavorite(id) {
			mark = "yes"
		}
		if _, err := fmt.Fprintf(ctx.Out, "%d\t%s\n", id, mark); err != nil {
			return err
		}
	}
	return nil
}
