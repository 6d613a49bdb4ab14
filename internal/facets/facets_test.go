package facets

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jimezsa/jobboard/internal/backend"
	"github.com/jimezsa/jobboard/internal/models"
	"github.com/rs/zerolog"
)

type fakeAPI struct {
	mu     sync.Mutex
	lists  map[string][]string
	fail   map[string]bool
	scopes map[string]backend.FacetScope
}

func (f *fakeAPI) Facet(ctx context.Context, category string, scope backend.FacetScope) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scopes == nil {
		f.scopes = map[string]backend.FacetScope{}
	}
	f.scopes[category] = scope
	if f.fail[category] {
		return nil, errors.New("boom")
	}
	return f.lists[category], nil
}

func TestLoadScopedPassesScope(t *testing.T) {
	api := &fakeAPI{lists: map[string][]string{"companies": {"ACME", "Initech"}}}
	loader := NewLoader(api, zerolog.Nop())

	loader.LoadScoped(context.Background(), "DE", 2)

	for _, category := range Scoped {
		scope, ok := api.scopes[string(category)]
		if !ok {
			t.Fatalf("%s was not loaded", category)
		}
		if scope.CountryCode != "DE" || scope.TimeframeInWeeks != 2 {
			t.Fatalf("%s scope = %+v", category, scope)
		}
		if got := loader.Status(category); got != Loaded {
			t.Fatalf("Status(%s) = %s, want loaded", category, got)
		}
	}
	if _, ok := api.scopes["countries"]; ok {
		t.Fatalf("countries loaded by LoadScoped")
	}
	if got := loader.Options(Companies); len(got) != 2 {
		t.Fatalf("Options(companies) = %v", got)
	}
}

func TestFailedCategoryResolvesEmpty(t *testing.T) {
	api := &fakeAPI{
		lists: map[string][]string{"countries": {"DE"}, "skills": {"Go"}},
		fail:  map[string]bool{"skills": true},
	}
	loader := NewLoader(api, zerolog.Nop())

	loader.LoadGlobal(context.Background())

	if got := loader.Status(Skills); got != Failed {
		t.Fatalf("Status(skills) = %s, want failed", got)
	}
	if got := loader.Options(Skills); len(got) != 0 {
		t.Fatalf("Options(skills) = %v, want empty", got)
	}
	if got := loader.Options(Countries); len(got) != 1 {
		t.Fatalf("Options(countries) = %v, want [DE]", got)
	}
	if loader.AnyLoading() {
		t.Fatalf("AnyLoading() = true after load")
	}
}

func TestStatusDefaultsToIdle(t *testing.T) {
	loader := NewLoader(&fakeAPI{}, zerolog.Nop())
	if got := loader.Status(Languages); got != Idle {
		t.Fatalf("Status() = %s, want idle", got)
	}
}

func TestSearchIgnoresDiacritics(t *testing.T) {
	api := &fakeAPI{lists: map[string][]string{"locations": {"München", "Münster", "Berlin"}}}
	loader := NewLoader(api, zerolog.Nop())
	loader.LoadScoped(context.Background(), "", 1)

	got := loader.Search(Locations, "mun")
	if len(got) != 2 {
		t.Fatalf("Search(mun) = %v, want München and Münster", got)
	}
	if all := loader.Search(Locations, ""); len(all) != 3 {
		t.Fatalf("Search(\"\") = %v, want all", all)
	}
}

type bundleAPI struct {
	fakeAPI
	bundleCalls int
	scope       backend.FacetScope
	options     models.FilterOptions
	err         error
}

func (b *bundleAPI) FilterOptions(ctx context.Context, scope backend.FacetScope) (models.FilterOptions, error) {
	b.bundleCalls++
	b.scope = scope
	return b.options, b.err
}

func TestLoadBundleUsesOneRequest(t *testing.T) {
	api := &bundleAPI{options: models.FilterOptions{
		Countries: []string{"DE", "GB"},
		Skills:    []string{"Go"},
		Languages: []string{"German"},
	}}
	loader := NewLoader(api, zerolog.Nop())
	loader.LoadBundle(context.Background(), "DE", 2)

	if api.bundleCalls != 1 || len(api.scopes) != 0 {
		t.Fatalf("bundle calls = %d, single calls = %d, want 1 and 0", api.bundleCalls, len(api.scopes))
	}
	if api.scope.CountryCode != "DE" || api.scope.TimeframeInWeeks != 2 {
		t.Fatalf("scope = %+v", api.scope)
	}
	if got := loader.Options(Countries); len(got) != 2 || got[1] != "GB" {
		t.Fatalf("Options(countries) = %v", got)
	}
	if got := loader.Status(Companies); got != Loaded {
		t.Fatalf("Status(companies) = %s, want loaded", got)
	}
	if got := loader.Options(Companies); got == nil || len(got) != 0 {
		t.Fatalf("Options(companies) = %#v, want empty list", got)
	}
}

func TestLoadBundleFailureMarksEveryCategory(t *testing.T) {
	loader := NewLoader(&bundleAPI{err: errors.New("down")}, zerolog.Nop())
	loader.LoadBundle(context.Background(), "", 1)
	for _, category := range All {
		if got := loader.Status(category); got != Failed {
			t.Fatalf("Status(%s) = %s, want failed", category, got)
		}
	}
	if loader.AnyLoading() {
		t.Fatalf("AnyLoading() = true after failed bundle")
	}
}

func TestLoadBundleFallsBackToSingleRequests(t *testing.T) {
	api := &fakeAPI{lists: map[string][]string{"skills": {"Go"}}}
	loader := NewLoader(api, zerolog.Nop())
	loader.LoadBundle(context.Background(), "DE", 1)
	if len(api.scopes) != len(All) {
		t.Fatalf("single requests = %d, want %d", len(api.scopes), len(All))
	}
}
