package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimezsa/jobboard/internal/auth"
	"github.com/jimezsa/jobboard/internal/backend"
	"github.com/jimezsa/jobboard/internal/config"
	"github.com/jimezsa/jobboard/internal/events"
	"github.com/jimezsa/jobboard/internal/export"
	"github.com/jimezsa/jobboard/internal/facets"
	"github.com/jimezsa/jobboard/internal/favorites"
	"github.com/jimezsa/jobboard/internal/listing"
	"github.com/jimezsa/jobboard/internal/network"
	"github.com/jimezsa/jobboard/internal/tokenstore"
	"github.com/rs/zerolog"
)

var ErrLoginRequired = errors.New("login required")

// Routes checked by the guard before a command touches the backend.
const (
	RouteJobs    = "/"
	RouteDetails = "/job-details/"
	RouteMap     = "/map"
)

// AppDeps overrides the transport and the token store. Zero values use the
// configured ones.
type AppDeps struct {
	Doer       network.Doer
	ExportDoer network.Doer
	Tokens     tokenstore.Store
}

// App is every service a command may need, wired once per run.
type App struct {
	Config    config.Config
	Tokens    tokenstore.Store
	Bus       *events.Bus
	Backend   *backend.Client
	Session   *auth.Controller
	Guard     auth.Guard
	Listing   *listing.Fetcher
	Facets    *facets.Loader
	Favorites *favorites.Controller
	Exporter  *export.Orchestrator
	Logger    zerolog.Logger

	closers []func() error
}

func NewApp(cfg config.Config, logger zerolog.Logger, deps AppDeps) (*App, error) {
	app := &App{Config: cfg, Bus: events.New(), Logger: logger}

	tokens := deps.Tokens
	if tokens == nil {
		var err error
		tokens, err = app.openTokenStore()
		if err != nil {
			return nil, err
		}
	}
	app.Tokens = tokens

	api, err := network.NewClient(network.Options{
		BaseURL:  cfg.BaseURL(),
		Timeout:  cfg.Timeout(),
		Insecure: cfg.Insecure,
		Proxy:    cfg.Proxy,
		Tokens:   tokens,
		Bus:      app.Bus,
		Logger:   logger,
		Doer:     deps.Doer,
	})
	if err != nil {
		return nil, err
	}
	exportDoer := deps.ExportDoer
	if exportDoer == nil {
		exportDoer = deps.Doer
	}
	exportClient, err := network.NewClient(network.Options{
		BaseURL:  cfg.BaseURL(),
		Timeout:  cfg.ExportTimeoutDuration(),
		Insecure: cfg.Insecure,
		Proxy:    cfg.Proxy,
		Tokens:   tokens,
		Bus:      app.Bus,
		Logger:   logger,
		Doer:     exportDoer,
	})
	if err != nil {
		return nil, err
	}

	app.Backend = backend.New(api, exportClient)
	app.Session = auth.NewController(tokens, app.Bus, app.Backend, auth.WithLogger(logger))
	app.closers = append(app.closers, func() error {
		app.Session.Close()
		return nil
	})
	app.Guard = auth.NewGuard(app.Session)
	app.Listing = listing.New(app.Backend, listing.WithPageSize(cfg.PageSize), listing.WithLogger(logger))
	app.Facets = facets.NewLoader(app.Backend, logger)
	app.Favorites = favorites.New(app.Backend, app.Session, favorites.WithLogger(logger))
	unsubscribe := app.Session.Subscribe(func(s *auth.Session) {
		if s == nil {
			app.Favorites.Reset()
		}
	})
	app.closers = append(app.closers, func() error {
		unsubscribe()
		return nil
	})
	app.Exporter = export.NewOrchestrator(app.Backend, logger)
	return app, nil
}

func (a *App) openTokenStore() (tokenstore.Store, error) {
	switch strings.ToLower(strings.TrimSpace(a.Config.TokenStore)) {
	case config.TokenStoreRedis:
		store := tokenstore.NewRedis(tokenstore.RedisOptions{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
			Key:      a.Config.RedisKey,
		})
		a.closers = append(a.closers, store.Close)
		return store, nil
	case "", config.TokenStoreFile:
		path, err := config.SessionPath()
		if err != nil {
			return nil, err
		}
		return tokenstore.NewFile(path), nil
	default:
		return nil, fmt.Errorf("unknown token_store %q (want file or redis)", a.Config.TokenStore)
	}
}

// Require runs the route guard for route and turns a redirect into an error.
func (a *App) Require(route string) error {
	decision := a.Guard.Check(route)
	if decision.Allowed {
		return nil
	}
	return fmt.Errorf("%w for %s: run `jobboard login` (redirect to %s)", ErrLoginRequired, decision.From, decision.Redirect)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
