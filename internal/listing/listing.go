// Package listing turns filter state into job-post requests and walks
// offset or cursor pagination.
package listing

import (
	"context"
	"errors"

	"github.com/jimezsa/jobboard/internal/backend"
	"github.com/jimezsa/jobboard/internal/filters"
	"github.com/jimezsa/jobboard/internal/models"
	"github.com/rs/zerolog"
)

const DefaultPageSize = 10

// ErrNoCursor is returned when cursor pagination is asked to continue from
// a page that carried no position.
var ErrNoCursor = errors.New("no cursor to continue from")

// JobsAPI is the backend surface the fetcher needs.
type JobsAPI interface {
	FetchJobPosts(ctx context.Context, q backend.JobQuery) (models.PageResult, error)
}

type Option func(*Fetcher)

func WithPageSize(size int) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.pageSize = size
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

type Fetcher struct {
	api      JobsAPI
	pageSize int
	logger   zerolog.Logger
}

func New(api JobsAPI, opts ...Option) *Fetcher {
	f := &Fetcher{api: api, pageSize: DefaultPageSize, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) PageSize() int {
	return f.pageSize
}

// Query maps a filter state onto request parameters.
func (f *Fetcher) Query(s filters.State) backend.JobQuery {
	page := s.Page
	if page < 1 {
		page = 1
	}
	timeframe := s.TimeframeInWeeks
	if timeframe < 1 {
		timeframe = 1
	}
	return backend.JobQuery{
		CountryCode:      s.CountryCode,
		Page:             page,
		PageSize:         f.pageSize,
		TimeframeInWeeks: timeframe,
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
}

// Fetch loads the page s points at using offset pagination. On failure the
// returned page is the error page and err is set.
func (f *Fetcher) Fetch(ctx context.Context, s filters.State) (models.PageResult, error) {
	return f.run(ctx, f.Query(s))
}

// FetchAfter loads the page following cursor using keyset pagination.
func (f *Fetcher) FetchAfter(ctx context.Context, s filters.State, cursor models.Cursor) (models.PageResult, error) {
	if !cursor.Valid() {
		return models.ErrorPage(), ErrNoCursor
	}
	q := f.Query(s)
	q.Page = 1
	q.UseCursor = true
	q.LastCreated = cursor.LastCreated
	q.LastJobID = cursor.LastJobID
	return f.run(ctx, q)
}

// Collect gathers postings from the first page of s until the last page or
// until limit postings were gathered. A limit of 0 or less means no limit.
// The first request asks for cursor pagination; when the backend answers
// without a cursor, the remaining pages are walked by offset.
func (f *Fetcher) Collect(ctx context.Context, s filters.State, limit int) ([]models.JobPosting, error) {
	first := s.Clone()
	first.Page = 1

	q := f.Query(first)
	q.UseCursor = true
	page, err := f.run(ctx, q)
	if err != nil {
		return nil, err
	}
	jobs := append([]models.JobPosting{}, page.Jobs...)
	byCursor := page.Cursor.Valid()
	totalPages := page.TotalPages
	offset := 1

	for !reached(len(jobs), limit) {
		if byCursor {
			if !page.Cursor.HasNextPage || !page.Cursor.Valid() {
				break
			}
		} else if offset >= totalPages {
			break
		}
		if err := ctx.Err(); err != nil {
			return jobs, err
		}

		if byCursor {
			page, err = f.FetchAfter(ctx, first, page.Cursor)
		} else {
			offset++
			next := first.Clone()
			next.Page = offset
			page, err = f.Fetch(ctx, next)
		}
		if err != nil {
			return jobs, err
		}
		if len(page.Jobs) == 0 {
			break
		}
		jobs = append(jobs, page.Jobs...)
	}

	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (f *Fetcher) run(ctx context.Context, q backend.JobQuery) (models.PageResult, error) {
	page, err := f.api.FetchJobPosts(ctx, q)
	if err != nil {
		f.logger.Debug().Err(err).Int("page", q.Page).Msg("fetch job posts failed")
		return models.ErrorPage(), err
	}
	if len(page.Jobs) > f.pageSize {
		f.logger.Debug().Int("got", len(page.Jobs)).Int("page_size", f.pageSize).Msg("trimming oversized page")
		page.Jobs = page.Jobs[:f.pageSize]
	}
	return page, nil
}

func reached(n int, limit int) bool {
	return limit > 0 && n >= limit
}
