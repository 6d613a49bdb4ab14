package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/jimezsa/jobboard/internal/export"
	"github.com/jimezsa/jobboard/internal/facets"
	"github.com/jimezsa/jobboard/internal/filters"
)

// BrowseCmd runs a line-oriented filter shell on top of the filter
// controller. Every command that changes the filters refetches the list.
type BrowseCmd struct {
	FilterFlags
	OutputFlags

	Page int `help:"Initial page (default: page from --query, else 1)."`
}

type browseAction int

const (
	actionMutate browseAction = iota
	actionList
	actionQuery
	actionOptions
	actionFavorite
	actionShow
	actionExport
	actionHelp
	actionQuit
)

type browseCommand struct {
	action   browseAction
	mutation filters.Mutation
	category facets.Category
	arg      string
	id       int64
}

var errUnknownCommand = errors.New("unknown command, type help")

const browseHelp = `Filters:
  country CODE | timeframe N | title TEXT | company NAME | location NAME
  contract-type VALUE | contract-time VALUE | work-location VALUE   (repeat to clear)
  skill NAME | language NAME                                        (toggle)
  favorites on|off
  clear KEY | clear all
Paging:
  page N | next | prev
Other:
  list | query | options CATEGORY [TERM] | fav ID | show ID | export csv|json | quit`

// parseBrowseCommand reads one shell line. totalPages bounds next; values
// below 1 count as a single page.
func parseBrowseCommand(line string, current filters.State, totalPages int) (browseCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return browseCommand{action: actionList}, nil
	}
	name := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	mutate := func(m filters.Mutation) (browseCommand, error) {
		return browseCommand{action: actionMutate, mutation: m}, nil
	}

	switch name {
	case "country":
		return mutate(filters.SetCountry(rest))
	case "timeframe":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return browseCommand{}, fmt.Errorf("timeframe wants a number of weeks")
		}
		return mutate(filters.SetTimeframe(n))
	case "title":
		return mutate(filters.SetTitle(rest))
	case "company":
		return mutate(filters.SetCompany(rest))
	case "location":
		return mutate(filters.SetLocation(rest))
	case "contract-type":
		return mutate(filters.ToggleContractType(rest))
	case "contract-time":
		return mutate(filters.ToggleContractTime(rest))
	case "work-location":
		return mutate(filters.ToggleWorkLocation(rest))
	case "skill":
		if rest == "" {
			return browseCommand{}, fmt.Errorf("skill wants a name")
		}
		return mutate(filters.ToggleSkill(rest))
	case "language":
		if rest == "" {
			return browseCommand{}, fmt.Errorf("language wants a name")
		}
		return mutate(filters.ToggleLanguage(rest))
	case "favorites":
		switch strings.ToLower(rest) {
		case "on", "true", "yes":
			return mutate(filters.SetOnlyFavorites(true))
		case "off", "false", "no":
			return mutate(filters.SetOnlyFavorites(false))
		}
		return browseCommand{}, fmt.Errorf("favorites wants on or off")
	case "clear":
		if rest == "" || strings.EqualFold(rest, "all") {
			return mutate(filters.ClearAll())
		}
		m, err := filters.ClearFilter(filterKey(rest))
		if err != nil {
			return browseCommand{}, err
		}
		return mutate(m)
	case "page":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return browseCommand{}, fmt.Errorf("page wants a number")
		}
		return mutate(filters.SetPage(n))
	case "next", "n":
		return mutate(filters.SetPage(min(current.Page+1, max(totalPages, 1))))
	case "prev", "p":
		return mutate(filters.SetPage(current.Page - 1))
	case "list", "ls":
		return browseCommand{action: actionList}, nil
	case "query":
		return browseCommand{action: actionQuery}, nil
	case "options":
		if len(fields) < 2 {
			return browseCommand{}, fmt.Errorf("options wants a category")
		}
		category, err := parseCategory(fields[1])
		if err != nil {
			return browseCommand{}, err
		}
		return browseCommand{action: actionOptions, category: category, arg: strings.Join(fields[2:], " ")}, nil
	case "fav", "show":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 {
			return browseCommand{}, fmt.Errorf("%s wants a job id", name)
		}
		if name == "fav" {
			return browseCommand{action: actionFavorite, id: id}, nil
		}
		return browseCommand{action: actionShow, id: id}, nil
	case "export":
		return browseCommand{action: actionExport, arg: strings.ToLower(rest)}, nil
	case "help", "?":
		return browseCommand{action: actionHelp}, nil
	case "quit", "exit", "q":
		return browseCommand{action: actionQuit}, nil
	default:
		return browseCommand{}, errUnknownCommand
	}
}

// filterKey maps shell spellings onto filter keys.
func filterKey(name string) filters.Key {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "contract-type":
		return filters.KeyContractType
	case "contract-time":
		return filters.KeyContractTime
	case "work-location":
		return filters.KeyWorkLocation
	case "skill", "skills":
		return filters.KeySkills
	case "language", "languages":
		return filters.KeyLanguages
	case "favorite", "favorites":
		return filters.KeyFavorites
	default:
		return filters.Key(strings.ToLower(strings.TrimSpace(name)))
	}
}

func (c *BrowseCmd) Run(ctx *Context) error {
	initial, err := c.State(ctx.Config)
	if err != nil {
		return err
	}
	initial, err = withPage(initial, c.Page)
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

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.Facets.LoadGlobal(runCtx)
	controller := filters.NewController(runCtx, app.Listing, initial,
		filters.WithLogger(ctx.Logger),
		filters.WithURLSink(func(values url.Values) {
			ctx.Logger.Debug().Str("query", values.Encode()).Msg("filters changed")
		}),
		filters.WithListener(func(snap filters.Snapshot) {
			if snap.Loading {
				return
			}
			ctx.Logger.Debug().
				Str("query", snap.State.Query()).
				Int("total", snap.Result.TotalCount).
				Err(snap.Err).
				Msg("job list updated")
		}),
		filters.WithScopeListener(func(s filters.State) {
			go app.Facets.LoadScoped(runCtx, s.CountryCode, s.TimeframeInWeeks)
		}),
	)
	defer controller.Close()

	controller.Start()
	sh := &browseShell{ctx: ctx, app: app, controller: controller, opts: c.OutputFlags, runCtx: runCtx}
	sh.render()
	return sh.loop(ctx.In)
}

type browseShell struct {
	ctx        *Context
	app        *App
	controller *filters.Controller
	opts       OutputFlags
	runCtx     context.Context
}

func (s *browseShell) loop(in io.Reader) error {
	if in == nil {
		return nil
	}
	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(s.ctx.Err, "jobs> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(s.ctx.Err)
			return scanner.Err()
		}
		totalPages := s.controller.Snapshot().Result.TotalPages
		cmd, err := parseBrowseCommand(scanner.Text(), s.controller.State(), totalPages)
		if err != nil {
			s.ctx.UI.Warnf("%v", err)
			continue
		}
		if cmd.action == actionQuit {
			return nil
		}
		if err := s.handle(cmd); err != nil {
			s.ctx.UI.Warnf("%v", err)
		}
	}
}

func (s *browseShell) handle(cmd browseCommand) error {
	switch cmd.action {
	case actionMutate:
		if !s.controller.Apply(cmd.mutation) {
			s.ctx.UI.Infof("Filters unchanged.")
			return nil
		}
		s.render()
	case actionList:
		if s.controller.Snapshot().Err != nil {
			s.controller.Refresh()
		}
		s.render()
	case actionQuery:
		_, _ = fmt.Fprintf(s.ctx.Out, "?%s\n", s.controller.State().Query())
	case actionOptions:
		return s.options(cmd.category, cmd.arg)
	case actionFavorite:
		fav, err := s.app.Favorites.Toggle(s.runCtx, cmd.id)
		if err != nil {
			return err
		}
		if fav {
			s.ctx.UI.Successf("Added %d to favorites.", cmd.id)
		} else {
			s.ctx.UI.Successf("Removed %d from favorites.", cmd.id)
		}
	case actionShow:
		return showJob(s.runCtx, s.ctx, s.app, cmd.id)
	case actionExport:
		result, err := s.app.Exporter.Run(s.runCtx, export.Request{
			Filters: s.controller.State(),
			Format:  cmd.arg,
			Dir:     s.ctx.Config.ExportDir,
		})
		if err != nil {
			return err
		}
		s.ctx.UI.Successf("Exported %d bytes to %s", result.Bytes, result.Path)
	case actionHelp:
		_, _ = fmt.Fprintln(s.ctx.Out, browseHelp)
	}
	return nil
}

func (s *browseShell) render() {
	stop := s.ctx.UI.StartIndicator("Loading jobs")
	s.controller.Wait()
	stop()

	snap := s.controller.Snapshot()
	if snap.Err != nil {
		s.ctx.UI.Warnf("Failed to load jobs: %v. Type list to retry.", snap.Err)
		return
	}
	jobs := snap.Result.Jobs
	marks := favoriteMarks(s.runCtx, s.ctx, s.app, jobs)
	format, err := resolveFormat(s.ctx, s.opts, "")
	if err != nil {
		s.ctx.UI.Warnf("%v", err)
		return
	}
	if err := export.WriteJobs(s.ctx.Out, jobs, format, writeOptions(s.ctx, s.ctx.Out, s.opts, marks)); err != nil {
		s.ctx.UI.Warnf("%v", err)
	}
	printListSummary(s.ctx, snap.State, snap.Result, len(jobs))
}

func (s *browseShell) options(category facets.Category, term string) error {
	loader := s.app.Facets
	if loader.Status(category) == facets.Idle {
		state := s.controller.State()
		loader.LoadAll(s.runCtx, state.CountryCode, state.TimeframeInWeeks)
	}
	if loader.AnyLoading() {
		s.ctx.UI.Infof("Options are still loading.")
	}
	if loader.Status(category) == facets.Failed {
		return fmt.Errorf("could not load %s", category)
	}
	for _, item := range loader.Search(category, term) {
		_, _ = fmt.Fprintln(s.ctx.Out, item)
	}
	return nil
}
