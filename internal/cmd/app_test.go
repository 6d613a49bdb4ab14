package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobboard/internal/network"
	"github.com/jimezsa/jobboard/internal/tokenstore"
)

const jobPostsBody = `{
  "posts": [
    {"id": 7, "title": "Go Developer", "companyName": "Acme", "locationName": "Berlin", "countryCode": "DE", "created": "2025-03-01T10:00:00", "url": "https://jobs.example.test/7"}
  ],
  "totalCount": 1,
  "totalPages": 1
}`

func TestJobsRequiresLogin(t *testing.T) {
	doer := &routeDoer{}
	ctx, _, _ := newTestContext(t, doer, tokenstore.NewMemory(tokenstore.Record{}))

	err := (&JobsCmd{Page: 1}).Run(ctx)
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("Run() error = %v, want ErrLoginRequired", err)
	}
	if doer.count() != 0 {
		t.Fatalf("requests = %d, want 0", doer.count())
	}
}

func TestJobsDropsExpiredToken(t *testing.T) {
	store := tokenstore.NewMemory(tokenstore.Record{Token: signedToken(t, time.Now().Add(-time.Minute))})
	ctx, _, _ := newTestContext(t, &routeDoer{}, store)

	if err := (&JobsCmd{Page: 1}).Run(ctx); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("Run() error = %v, want ErrLoginRequired", err)
	}
	record, _ := store.Get()
	if !record.Empty() {
		t.Fatalf("expired token kept in store")
	}
}

func TestJobsWritesCSV(t *testing.T) {
	doer := &routeDoer{routes: map[string]cannedResponse{
		"/api/Adzuna/get-job-posts": {status: 200, body: jobPostsBody},
		"/api/favorites/check/7":    {status: 200, body: `{"isFavorite": true}`},
	}}
	ctx, out, errOut := newTestContext(t, doer, signedInStore(t))

	cmd := &JobsCmd{FilterFlags: FilterFlags{Country: "de", Skills: []string{"React"}}, Page: 1}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	reqs := doer.requestsTo("/api/Adzuna/get-job-posts")
	if len(reqs) != 1 {
		t.Fatalf("job requests = %d, want 1", len(reqs))
	}
	want := "countryCode=DE&page=1&pageSize=10&skills=React&timeframeInWeeks=1"
	if got := reqs[0].URL.RawQuery; got != want {
		t.Fatalf("query = %q, want %q", got, want)
	}
	if got := reqs[0].Header.Get("authorization"); !strings.HasPrefix(got, "Bearer ") {
		t.Fatalf("authorization = %q, want bearer token", got)
	}
	if !strings.HasPrefix(out.String(), "id,title,") {
		t.Fatalf("output is not CSV: %q", out.String())
	}
	if !strings.Contains(out.String(), "Go Developer") {
		t.Fatalf("output missing posting: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "summary: page=1/1 shown=1 total=1") {
		t.Fatalf("summary = %q", errOut.String())
	}
}

func TestJobsUsesPageFromQuery(t *testing.T) {
	doer := &routeDoer{routes: map[string]cannedResponse{
		"/api/Adzuna/get-job-posts": {status: 200, body: jobPostsBody},
	}}
	ctx, _, _ := newTestContext(t, doer, signedInStore(t))

	if err := (&JobsCmd{FilterFlags: FilterFlags{Query: "country=DE&page=3"}}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	reqs := doer.requestsTo("/api/Adzuna/get-job-posts")
	if len(reqs) != 1 {
		t.Fatalf("job requests = %d, want 1", len(reqs))
	}
	if got := reqs[0].URL.Query().Get("page"); got != "3" {
		t.Fatalf("page = %q, want 3", got)
	}
}

func TestJobsUnauthorizedClearsSession(t *testing.T) {
	doer := &routeDoer{routes: map[string]cannedResponse{
		"/api/Adzuna/get-job-posts": {status: 401, body: ""},
	}}
	store := signedInStore(t)
	ctx, _, _ := newTestContext(t, doer, store)

	err := (&JobsCmd{Page: 1}).Run(ctx)
	if !errors.Is(err, network.ErrUnauthorized) {
		t.Fatalf("Run() error = %v, want ErrUnauthorized", err)
	}
	record, _ := store.Get()
	if !record.Empty() {
		t.Fatalf("token kept after 401")
	}
	if ctx.App.Session.IsAuthenticated() {
		t.Fatalf("session still authenticated after 401")
	}
	if err := ctx.App.Require(RouteJobs); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("Require(/) error = %v, want ErrLoginRequired", err)
	}
}

func TestJobsEmptyStateHint(t *testing.T) {
	doer := &routeDoer{routes: map[string]cannedResponse{
		"/api/Adzuna/get-job-posts": {status: 200, body: `{"posts": null, "totalCount": 0, "totalPages": 0, "message": " Nothing matched. "}`},
	}}
	ctx, _, errOut := newTestContext(t, doer, signedInStore(t))

	if err := (&JobsCmd{Page: 1}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(errOut.String(), "Nothing matched.") {
		t.Fatalf("message missing: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "No jobs found.") {
		t.Fatalf("empty state hint missing: %q", errOut.String())
	}
}

func TestExportCommandWritesFile(t *testing.T) {
	doer := &routeDoer{routes: map[string]cannedResponse{
		"/api/Adzuna/export-job-posts-csv": {status: 200, body: "id,title\n7,Go Developer\n"},
	}}
	ctx, _, _ := newTestContext(t, doer, signedInStore(t))
	dir := t.TempDir()

	cmd := &ExportCmd{FilterFlags: FilterFlags{Country: "DE", Timeframe: 2}, Format: "csv", Dir: dir}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	reqs := doer.requestsTo("/api/Adzuna/export-job-posts-csv")
	if len(reqs) != 1 {
		t.Fatalf("export requests = %d, want 1", len(reqs))
	}
	if got := reqs[0].URL.Query().Get("page"); got != "" {
		t.Fatalf("export sent page=%q, want none", got)
	}
	if got := reqs[0].URL.Query().Get("timeframeInWeeks"); got != "2" {
		t.Fatalf("timeframeInWeeks = %q, want 2", got)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "JobPosts_DE_*.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("export files = %v (err %v), want one", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Go Developer") {
		t.Fatalf("export content = %q", data)
	}
}

func TestWhoamiAndLogout(t *testing.T) {
	store := signedInStore(t)
	ctx, out, _ := newTestContext(t, &routeDoer{}, store)

	if err := (&WhoamiCmd{}).Run(ctx); err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if !strings.Contains(out.String(), "ada@example.com (user-1)") {
		t.Fatalf("whoami output = %q", out.String())
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout error = %v", err)
	}
	record, _ := store.Get()
	if !record.Empty() {
		t.Fatalf("token kept after logout")
	}
	if err := (&WhoamiCmd{}).Run(ctx); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("whoami after logout error = %v, want ErrLoginRequired", err)
	}
}

func TestFavoritesToggleSignedOutMakesNoCalls(t *testing.T) {
	doer := &routeDoer{}
	ctx, _, _ := newTestContext(t, doer, tokenstore.NewMemory(tokenstore.Record{}))

	if err := (&FavoritesToggleCmd{ID: 7}).Run(ctx); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("Run() error = %v, want ErrLoginRequired", err)
	}
	if doer.count() != 0 {
		t.Fatalf("requests = %d, want 0", doer.count())
	}
}

func TestGeocodeCommand(t *testing.T) {
	ctx, out, errOut := newTestContext(t, &routeDoer{}, nil)

	if err := (&GeocodeCmd{Labels: []string{"Mitte, Berlin", "Unknownburg"}}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Berlin, Germany") {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "(no match)") {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "total=2 successful=1 failed=1") {
		t.Fatalf("summary = %q", errOut.String())
	}
}

func TestProbeStatus(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{err: nil, want: "ok"},
		{err: network.ErrUnauthorized, want: "reachable (401)"},
		{err: &network.StatusError{StatusCode: 503}, want: "http 503"},
		{err: errors.New("dial tcp: refused"), want: "unreachable"},
	}
	for _, tc := range cases {
		if got := probeStatus(tc.err); got != tc.want {
			t.Fatalf("probeStatus(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
