package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jimezsa/jobboard/internal/backend"
	"github.com/jimezsa/jobboard/internal/filters"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyExport = errors.New("export returned empty response")
	ErrValidation  = errors.New("validation failed")
)

// API downloads a server-side export. *backend.Client implements it.
type API interface {
	Export(ctx context.Context, format string, query url.Values) ([]byte, error)
}

// Request describes one bulk export. Pagination in Filters is ignored.
type Request struct {
	Filters filters.State
	Format  string
	Dir     string
}

type params struct {
	TimeframeInWeeks int    `validate:"gte=1"`
	Format           string `validate:"oneof=csv json"`
}

// Result reports where the export landed.
type Result struct {
	Path  string
	Bytes int
}

type Orchestrator struct {
	api      API
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

func NewOrchestrator(api API, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		api:      api,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Run validates req, downloads the export and writes it under req.Dir.
// Nothing is requested when validation fails, and nothing is written when
// the backend returns an empty payload.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if err := o.check(params{TimeframeInWeeks: req.Filters.TimeframeInWeeks, Format: format}); err != nil {
		return Result{}, err
	}

	query := Query(req.Filters)
	label := CountryLabel(req.Filters.CountryCode)
	o.logger.Info().Str("format", format).Str("country", label).Str("query", query.Encode()).Msg("starting export")

	data, err := o.api.Export(ctx, format, query)
	if err != nil {
		return Result{}, fmt.Errorf("export job posts as %s: %w", strings.ToUpper(format), err)
	}
	if len(data) == 0 {
		return Result{}, ErrEmptyExport
	}

	dir := req.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, err
	}
	path, err := availablePath(filepath.Join(dir, Filename(req.Filters.CountryCode, format, o.now())))
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Result{}, err
	}

	o.logger.Info().Str("path", path).Int("bytes", len(data)).Msg("export completed")
	return Result{Path: path, Bytes: len(data)}, nil
}

func (o *Orchestrator) check(p params) error {
	err := o.validate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "TimeframeInWeeks":
			msgs = append(msgs, "Timeframe must be at least 1 week")
		case "Format":
			msgs = append(msgs, fmt.Sprintf("format must be csv or json, got %q", p.Format))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, ", "))
}

// Query encodes the filter parameters of an export. Pagination is never sent.
func Query(s filters.State) url.Values {
	q := backend.JobQuery{
		CountryCode:      s.CountryCode,
		TimeframeInWeeks: s.TimeframeInWeeks,
		ContractType:     s.ContractType,
		ContractTime:     s.ContractTime,
		WorkLocation:     s.WorkLocation,
		Title:            s.Title,
		Location:         s.Location,
		Company:          s.Company,
		Skills:           s.Skills,
		Languages:        s.Languages,
		OnlyFavorites:    s.OnlyFavorites,
	}
	return q.FilterValues()
}

func CountryLabel(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "AllCountries"
	}
	return code
}

// Filename builds JobPosts_<country>_<UTC time>.<ext>, with the time in
// 2006-01-02T15-04-05 form.
func Filename(countryCode string, format string, now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15-04-05")
	return fmt.Sprintf("JobPosts_%s_%s.%s", CountryLabel(countryCode), stamp, format)
}

func availablePath(path string) (string, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", err
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i < 1000; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free file name for %s", path)
}
