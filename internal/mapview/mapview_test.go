package mapview

import (
	"context"
	"errors"
	"testing"

	"github.com/jimezsa/jobboard/internal/geocode"
	"github.com/jimezsa/jobboard/internal/models"
)

type fakeAPI struct {
	summaryCalls  int
	locationCalls int
	lastCountry   string
	lastTimeframe int
	lastLocation  int64
	summary       []models.LocationGroup
	location      []models.LocationGroup
	err           error
}

func (f *fakeAPI) LocationsSummary(ctx context.Context, countryCode string, timeframeInWeeks int) ([]models.LocationGroup, error) {
	f.summaryCalls++
	f.lastCountry = countryCode
	f.lastTimeframe = timeframeInWeeks
	return f.summary, f.err
}

func (f *fakeAPI) LocationJobs(ctx context.Context, countryCode string, locationID int64, timeframeInWeeks int) ([]models.LocationGroup, error) {
	f.locationCalls++
	f.lastLocation = locationID
	return f.location, f.err
}

func coord(v float64) models.FlexFloat {
	return models.FlexFloat{Value: v, Valid: true}
}

func summaryGroups() []models.LocationGroup {
	return []models.LocationGroup{
		{LocationID: 1, LocationName: "Berlin", Latitude: coord(52.52), Longitude: coord(13.405), JobCount: 12},
		{LocationID: 2, LocationName: "Mitte, Hamburg", JobCount: 3},
		{LocationID: 3, LocationName: "Unknownburg", JobCount: 6},
		{LocationName: "Remote", JobCount: 2},
	}
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		from, to Phase
		want     bool
	}{
		{from: PhaseIdle, to: PhaseLoadingSummary, want: true},
		{from: PhaseIdle, to: PhaseLoadingLocation, want: false},
		{from: PhaseSummaryLoaded, to: PhaseLoadingLocation, want: true},
		{from: PhaseLocationJobsLoaded, to: PhaseLoadingSummary, want: true},
		{from: PhaseLoadingSummary, to: PhaseLocationJobsLoaded, want: false},
		{from: PhaseFailed, to: PhaseLoadingSummary, want: true},
	}
	for _, tc := range cases {
		if got := IsTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("IsTransitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	api := &fakeAPI{summary: summaryGroups()}
	c := New(api)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	view := c.View()
	if view.Phase != PhaseSummaryLoaded {
		t.Fatalf("Phase = %s, want summary_loaded", view.Phase)
	}
	if api.lastCountry != "DE" || api.lastTimeframe != 1 {
		t.Fatalf("summary request = %s/%d, want DE/1", api.lastCountry, api.lastTimeframe)
	}
	if view.Center != geocode.GermanyCentroid || view.Zoom != 6 {
		t.Fatalf("center=%+v zoom=%d", view.Center, view.Zoom)
	}
}

func TestWithScope(t *testing.T) {
	api := &fakeAPI{}
	c := New(api, WithScope(" gb ", 3))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if api.lastCountry != "GB" || api.lastTimeframe != 3 {
		t.Fatalf("summary request = %s/%d, want GB/3", api.lastCountry, api.lastTimeframe)
	}

	c = New(api, WithScope("", 9))
	if view := c.View(); view.CountryCode != DefaultCountry || view.TimeframeInWeeks != 1 {
		t.Fatalf("View() scope = %s/%d, want defaults", view.CountryCode, view.TimeframeInWeeks)
	}
}

func TestSelectFlattensJobsAndCountryChangeClears(t *testing.T) {
	api := &fakeAPI{
		summary: summaryGroups(),
		location: []models.LocationGroup{
			{LocationID: 1, JobPosts: []models.JobPosting{{ID: 10}, {ID: 11}}},
			{LocationID: 1, JobPosts: []models.JobPosting{{ID: 12}}},
		},
	}
	c := New(api)
	ctx := context.Background()
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := c.SelectByID(ctx, 1); err != nil {
		t.Fatalf("SelectByID() error = %v", err)
	}
	view := c.View()
	if view.Phase != PhaseLocationJobsLoaded || len(view.Jobs) != 3 || view.SelectedName != "Berlin" {
		t.Fatalf("view = %+v, want 3 Berlin jobs", view)
	}

	if err := c.SetCountry(ctx, "gb"); err != nil {
		t.Fatalf("SetCountry() error = %v", err)
	}
	view = c.View()
	if view.SelectedName != "" || len(view.Jobs) != 0 {
		t.Fatalf("selection kept after country change: %+v", view)
	}
	if view.Phase != PhaseSummaryLoaded || api.lastCountry != "GB" {
		t.Fatalf("phase=%s country=%s", view.Phase, api.lastCountry)
	}
}

func TestSelectWithoutLocationIDIsNoOp(t *testing.T) {
	api := &fakeAPI{summary: summaryGroups()}
	c := New(api)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := c.Select(context.Background(), models.LocationGroup{LocationName: "Remote"}); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if api.locationCalls != 0 {
		t.Fatalf("locationCalls = %d, want 0", api.locationCalls)
	}
	if c.View().Phase != PhaseSummaryLoaded {
		t.Fatalf("Phase = %s, want unchanged", c.View().Phase)
	}
}

func TestSetTimeframeValidates(t *testing.T) {
	api := &fakeAPI{}
	c := New(api)
	if err := c.SetTimeframe(context.Background(), 6); !errors.Is(err, ErrInvalidTimeframe) {
		t.Fatalf("SetTimeframe(6) error = %v", err)
	}
	if api.summaryCalls != 0 {
		t.Fatalf("summaryCalls = %d, want 0", api.summaryCalls)
	}
	if err := c.SetTimeframe(context.Background(), 3); err != nil {
		t.Fatalf("SetTimeframe(3) error = %v", err)
	}
	if api.lastTimeframe != 3 {
		t.Fatalf("lastTimeframe = %d, want 3", api.lastTimeframe)
	}
}

func TestLoadFailure(t *testing.T) {
	c := New(&fakeAPI{err: errors.New("timeout")})
	if err := c.Load(context.Background()); err == nil {
		t.Fatalf("Load() error = nil")
	}
	if c.View().Phase != PhaseFailed {
		t.Fatalf("Phase = %s, want failed", c.View().Phase)
	}
}

func TestSelectBeforeLoadRejected(t *testing.T) {
	c := New(&fakeAPI{})
	err := c.Select(context.Background(), models.LocationGroup{LocationID: 4})
	if !errors.Is(err, ErrBadTransition) {
		t.Fatalf("Select() error = %v, want ErrBadTransition", err)
	}
}

func TestMarkersUseGeocoderFallback(t *testing.T) {
	c := New(&fakeAPI{summary: summaryGroups()})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	markers, stats := c.Markers()
	if len(markers) != 2 {
		t.Fatalf("len(markers) = %d, want Berlin and Hamburg", len(markers))
	}
	if markers[0].Approximate || markers[0].Tier != TierLarge {
		t.Fatalf("Berlin marker = %+v", markers[0])
	}
	if !markers[1].Approximate || markers[1].Group.LocationName != "Mitte, Hamburg" {
		t.Fatalf("Hamburg marker = %+v", markers[1])
	}
	if stats.Total != 3 || stats.Successful != 1 || stats.Failed != 2 {
		t.Fatalf("stats = %+v, want 3/1/2", stats)
	}
}

func TestSalaryLabel(t *testing.T) {
	low, high := 40000.0, 50000.0
	cases := []struct {
		job  models.JobPosting
		want string
	}{
		{job: models.JobPosting{SalaryMin: &low, SalaryMax: &high}, want: "€40000.00 - €50000.00"},
		{job: models.JobPosting{SalaryMin: &low}, want: "€40000.00+"},
		{job: models.JobPosting{SalaryMax: &high}, want: "Up to €50000.00"},
		{job: models.JobPosting{}, want: ""},
	}
	for _, tc := range cases {
		if got := SalaryLabel(tc.job, "DE"); got != tc.want {
			t.Fatalf("SalaryLabel() = %q, want %q", got, tc.want)
		}
	}
}

func TestParsePhase(t *testing.T) {
	for _, phase := range []Phase{PhaseIdle, PhaseLoadingSummary, PhaseSummaryLoaded, PhaseLoadingLocation, PhaseLocationJobsLoaded, PhaseFailed} {
		got, err := ParsePhase(string(phase))
		if err != nil || got != phase {
			t.Fatalf("ParsePhase(%q) = %q, %v", phase, got, err)
		}
	}
	if _, err := ParsePhase("rendering"); err == nil {
		t.Fatalf("ParsePhase(rendering) error = nil, want error")
	}
}

func TestClearSelectionReturnsToSummary(t *testing.T) {
	api := &fakeAPI{
		summary:  summaryGroups(),
		location: []models.LocationGroup{{LocationID: 1, JobPosts: []models.JobPosting{{ID: 7}}}},
	}
	c := New(api)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := c.SelectByID(context.Background(), 1); err != nil {
		t.Fatalf("SelectByID() error = %v", err)
	}
	c.ClearSelection()

	view := c.View()
	if view.Phase != PhaseSummaryLoaded || view.SelectedName != "" || len(view.Jobs) != 0 {
		t.Fatalf("View() = %+v, want summary without selection", view)
	}
	if len(view.Groups) != 4 {
		t.Fatalf("len(Groups) = %d, want summary kept", len(view.Groups))
	}
}

type fixedGeocoder map[string]geocode.Coordinate

func (g fixedGeocoder) Geocode(label string) (geocode.Coordinate, bool) {
	c, ok := g[label]
	return c, ok
}

func TestWithGeocoderReplacesStaticTable(t *testing.T) {
	c := New(&fakeAPI{summary: summaryGroups()}, WithGeocoder(fixedGeocoder{
		"Unknownburg": {Latitude: 50, Longitude: 8},
	}))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	markers, stats := c.Markers()
	if len(markers) != 2 || markers[1].Group.LocationName != "Unknownburg" {
		t.Fatalf("markers = %+v, want Berlin and Unknownburg", markers)
	}
	if stats.Successful != 1 || stats.Failed != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}
