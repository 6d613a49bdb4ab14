package export

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobboard/internal/filters"
	"github.com/jimezsa/jobboard/internal/models"
	"github.com/rs/zerolog"
)

type fakeExportAPI struct {
	calls   int
	format  string
	query   url.Values
	payload []byte
	err     error
}

func (f *fakeExportAPI) Export(ctx context.Context, format string, query url.Values) ([]byte, error) {
	f.calls++
	f.format = format
	f.query = query
	return f.payload, f.err
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 15, 4, 5, 123000000, time.UTC)
}

func newOrchestrator(api API) *Orchestrator {
	o := NewOrchestrator(api, zerolog.Nop())
	o.now = fixedClock
	return o
}

func TestRunRejectsZeroTimeframe(t *testing.T) {
	api := &fakeExportAPI{payload: []byte("x")}
	state := filters.Default()
	state.TimeframeInWeeks = 0

	_, err := newOrchestrator(api).Run(context.Background(), Request{Filters: state, Format: "csv", Dir: t.TempDir()})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Run() error = %v, want ErrValidation", err)
	}
	if api.calls != 0 {
		t.Fatalf("calls = %d, want 0", api.calls)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	api := &fakeExportAPI{payload: []byte("x")}
	_, err := newOrchestrator(api).Run(context.Background(), Request{Filters: filters.Default(), Format: "xml", Dir: t.TempDir()})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Run() error = %v, want ErrValidation", err)
	}
	if api.calls != 0 {
		t.Fatalf("calls = %d, want 0", api.calls)
	}
}

func TestRunEmptyPayloadWritesNothing(t *testing.T) {
	dir := t.TempDir()
	api := &fakeExportAPI{}
	_, err := newOrchestrator(api).Run(context.Background(), Request{Filters: filters.Default(), Format: "json", Dir: dir})
	if !errors.Is(err, ErrEmptyExport) {
		t.Fatalf("Run() error = %v, want ErrEmptyExport", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("dir has %d entries, want 0", len(entries))
	}
}

func TestRunWritesFileWithoutPagination(t *testing.T) {
	dir := t.TempDir()
	api := &fakeExportAPI{payload: []byte("id,title\n1,Go Dev\n")}
	state := filters.Default()
	state.CountryCode = "DE"
	state.Page = 4
	state.Title = " Go "
	state.Skills = []string{"Go"}

	o := newOrchestrator(api)
	result, err := o.Run(context.Background(), Request{Filters: state, Format: "CSV", Dir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantPath := filepath.Join(dir, "JobPosts_DE_2024-01-02T15-04-05.csv")
	if result.Path != wantPath {
		t.Fatalf("Path = %q, want %q", result.Path, wantPath)
	}
	if api.format != "csv" {
		t.Fatalf("format = %q, want csv", api.format)
	}
	if _, ok := api.query["page"]; ok {
		t.Fatalf("query %q carries page", api.query.Encode())
	}
	if _, ok := api.query["pageSize"]; ok {
		t.Fatalf("query %q carries pageSize", api.query.Encode())
	}
	if api.query.Get("title") != "Go" || api.query.Get("timeframeInWeeks") != "1" {
		t.Fatalf("query = %q", api.query.Encode())
	}

	second, err := o.Run(context.Background(), Request{Filters: state, Format: "csv", Dir: dir})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if second.Path == result.Path || !strings.HasSuffix(second.Path, "-1.csv") {
		t.Fatalf("second Path = %q, want numbered suffix", second.Path)
	}
}

func TestFilenameAllCountries(t *testing.T) {
	got := Filename("", "json", fixedClock())
	if got != "JobPosts_AllCountries_2024-01-02T15-04-05.json" {
		t.Fatalf("Filename() = %q", got)
	}
}

func TestWriteJobsFormats(t *testing.T) {
	low, high := 50000.0, 65000.5
	jobs := []models.JobPosting{{
		ID:           7,
		Title:        "Go Developer",
		CompanyName:  "ACME",
		LocationName: "Berlin",
		CountryCode:  "DE",
		SalaryMin:    &low,
		SalaryMax:    &high,
		Skills:       []string{"Go", "SQL"},
		URL:          "https://example.com/jobs/7",
	}}

	cases := []struct {
		format Format
		want   string
	}{
		{format: FormatCSV, want: "7,Go Developer,ACME,Berlin,DE"},
		{format: FormatTSV, want: "7\tGo Developer\tACME"},
		{format: FormatJSON, want: `"companyName": "ACME"`},
		{format: FormatYAML, want: "company_name: ACME"},
		{format: FormatMarkdown, want: "- **Go Developer** (ACME)"},
		{format: FormatTable, want: "Go Developer"},
	}
	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteJobs(&buf, jobs, tc.format, WriteOptions{}); err != nil {
				t.Fatalf("WriteJobs() error = %v", err)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("WriteJobs(%s) = %q, want substring %q", tc.format, buf.String(), tc.want)
			}
		})
	}
}

func TestSalaryRange(t *testing.T) {
	low, high := 1234.5, 65000.0
	job := models.JobPosting{CountryCode: "GB", SalaryMin: &low, SalaryMax: &high}
	if got, want := SalaryRange(job), "£ 1.234,50 - 65.000,00"; got != want {
		t.Fatalf("SalaryRange() = %q, want %q", got, want)
	}
	if got := SalaryRange(models.JobPosting{}); got != "" {
		t.Fatalf("SalaryRange(no salary) = %q, want empty", got)
	}
}

func TestHTMLToText(t *testing.T) {
	raw := `<p>We build <b>things</b>.</p><ul><li>Go</li><li>SQL</li></ul><script>alert(1)</script>`
	want := "We build things.\n- Go\n- SQL"
	if got := HTMLToText(raw); got != want {
		t.Fatalf("HTMLToText() = %q, want %q", got, want)
	}
	if got := HTMLToText("  plain text "); got != "plain text" {
		t.Fatalf("HTMLToText(plain) = %q", got)
	}
}

func TestWriteDetails(t *testing.T) {
	job := models.JobPosting{
		Title:           "Go Developer",
		CompanyName:     "ACME",
		ContractType:    "permanent",
		ContractTime:    "full_time",
		CountryCode:     "DE",
		Description:     "short",
		FullDescription: "<p>Long description</p>",
	}
	var buf bytes.Buffer
	if err := WriteDetails(&buf, job, WriteOptions{}); err != nil {
		t.Fatalf("WriteDetails() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Contract Type:  Permanent", "Work Time:      Full Time", "Germany", "Long description"} {
		if !strings.Contains(out, want) {
			t.Fatalf("WriteDetails() = %q, want substring %q", out, want)
		}
	}
	if strings.Contains(out, "short") {
		t.Fatalf("WriteDetails() used short description")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Fatalf("ParseFormat(YML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatalf("ParseFormat(pdf) error = nil")
	}
}
