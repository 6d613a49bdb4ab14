// Package facets loads the option lists shown next to each filter.
package facets

import (
	"context"
	"sync"

	"github.com/jimezsa/jobboard/internal/backend"
	"github.com/jimezsa/jobboard/internal/models"
	"github.com/jimezsa/jobboard/internal/textfold"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Category string

const (
	Countries     Category = "countries"
	Skills        Category = "skills"
	ContractTypes Category = "contractTypes"
	ContractTimes Category = "contractTimes"
	WorkLocations Category = "workLocations"
	Companies     Category = "companies"
	Locations     Category = "locations"
	Languages     Category = "languages"
)

// Global categories do not depend on country or timeframe.
var Global = []Category{Countries, Skills}

// Scoped categories are reloaded whenever country or timeframe change.
var Scoped = []Category{ContractTypes, ContractTimes, WorkLocations, Companies, Locations, Languages}

// All lists every category in display order.
var All = []Category{Countries, Skills, ContractTypes, ContractTimes, WorkLocations, Companies, Locations, Languages}

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// API is the backend surface the loader needs.
type API interface {
	Facet(ctx context.Context, category string, scope backend.FacetScope) ([]string, error)
}

// BundleAPI serves every category in a single request.
type BundleAPI interface {
	FilterOptions(ctx context.Context, scope backend.FacetScope) (models.FilterOptions, error)
}

// Loader keeps the latest option list and load status per category. A failed
// load leaves an empty list and never returns an error to the caller.
type Loader struct {
	api    API
	logger zerolog.Logger

	mu      sync.RWMutex
	options map[Category][]string
	status  map[Category]Status
	gen     map[Category]uint64
}

func NewLoader(api API, logger zerolog.Logger) *Loader {
	return &Loader{
		api:     api,
		logger:  logger,
		options: map[Category][]string{},
		status:  map[Category]Status{},
		gen:     map[Category]uint64{},
	}
}

// LoadGlobal loads the country-independent categories.
func (l *Loader) LoadGlobal(ctx context.Context) {
	l.load(ctx, Global, backend.FacetScope{})
}

// LoadScoped reloads the categories that depend on country and timeframe.
func (l *Loader) LoadScoped(ctx context.Context, countryCode string, timeframeInWeeks int) {
	l.load(ctx, Scoped, backend.FacetScope{CountryCode: countryCode, TimeframeInWeeks: timeframeInWeeks})
}

// LoadAll runs LoadGlobal and LoadScoped together.
func (l *Loader) LoadAll(ctx context.Context, countryCode string, timeframeInWeeks int) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l.LoadGlobal(ctx)
	}()
	go func() {
		defer wg.Done()
		l.LoadScoped(ctx, countryCode, timeframeInWeeks)
	}()
	wg.Wait()
}

// LoadBundle fills every category from one filter-options request. An API
// without that endpoint gets LoadAll instead.
func (l *Loader) LoadBundle(ctx context.Context, countryCode string, timeframeInWeeks int) {
	bundle, ok := l.api.(BundleAPI)
	if !ok {
		l.LoadAll(ctx, countryCode, timeframeInWeeks)
		return
	}
	gens := l.begin(All)
	options, err := bundle.FilterOptions(ctx, backend.FacetScope{CountryCode: countryCode, TimeframeInWeeks: timeframeInWeeks})
	lists := map[Category][]string{
		Countries:     options.Countries,
		Skills:        options.Skills,
		ContractTypes: options.ContractTypes,
		ContractTimes: options.ContractTimes,
		WorkLocations: options.WorkLocations,
		Companies:     options.Companies,
		Locations:     options.Locations,
		Languages:     options.Languages,
	}
	for _, category := range All {
		l.store(category, gens[category], lists[category], err)
	}
}

// begin marks categories as loading and returns the generation each load
// must still hold when it stores its result.
func (l *Loader) begin(categories []Category) map[Category]uint64 {
	gens := make(map[Category]uint64, len(categories))
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, category := range categories {
		l.gen[category]++
		gens[category] = l.gen[category]
		l.status[category] = Loading
	}
	return gens
}

func (l *Loader) load(ctx context.Context, categories []Category, scope backend.FacetScope) {
	gens := l.begin(categories)

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range categories {
		category := category
		g.Go(func() error {
			items, err := l.api.Facet(gctx, string(category), scope)
			l.store(category, gens[category], items, err)
			return nil
		})
	}
	_ = g.Wait()
}

func (l *Loader) store(category Category, gen uint64, items []string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen[category] != gen {
		return
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("category", string(category)).Msg("load filter options")
		l.options[category] = []string{}
		l.status[category] = Failed
		return
	}
	if items == nil {
		items = []string{}
	}
	l.options[category] = items
	l.status[category] = Loaded
}

// Options returns the current list for category.
func (l *Loader) Options(category Category) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.options[category]...)
}

func (l *Loader) Status(category Category) Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status[category]
}

// AnyLoading reports whether any category is still loading.
func (l *Loader) AnyLoading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, status := range l.status {
		if status == Loading {
			return true
		}
	}
	return false
}

// Search filters the options of category by a diacritics-insensitive
// substring match.
func (l *Loader) Search(category Category, term string) []string {
	return textfold.Filter(l.Options(category), term)
}
