package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/jobboard/internal/models"
)

// Response headers carrying keyset pagination metadata.
const (
	HeaderLastCreated = "x-lastcreated"
	HeaderLastJobID   = "x-lastjobid"
	HeaderHasNextPage = "x-hasnextpage"
)

// JobQuery is the full parameter set of get-job-posts.
type JobQuery struct {
	CountryCode      string
	Page             int
	PageSize         int
	TimeframeInWeeks int
	ContractType     string
	ContractTime     string
	WorkLocation     string
	Title            string
	Location         string
	Company          string
	Skills           []string
	Languages        []string
	OnlyFavorites    bool

	UseCursor   bool
	LastCreated time.Time
	LastJobID   int64
}

// FilterValues encodes the filter part of q. Empty values are omitted
// because an absent parameter means "no constraint" to the backend.
func (q JobQuery) FilterValues() url.Values {
	values := url.Values{}
	setNonEmpty(values, "countryCode", q.CountryCode)
	values.Set("timeframeInWeeks", strconv.Itoa(q.TimeframeInWeeks))
	setNonEmpty(values, "contractType", q.ContractType)
	setNonEmpty(values, "contractTime", q.ContractTime)
	setNonEmpty(values, "workLocation", q.WorkLocation)
	setNonEmpty(values, "title", q.Title)
	setNonEmpty(values, "location", q.Location)
	setNonEmpty(values, "company", q.Company)
	if q.OnlyFavorites {
		values.Set("onlyFavorites", "true")
	}
	addAll(values, "skills", q.Skills)
	addAll(values, "languages", q.Languages)
	return values
}

// Values encodes q for get-job-posts, including pagination.
func (q JobQuery) Values() url.Values {
	values := q.FilterValues()
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.UseCursor {
		values.Set("useCursorPagination", "true")
		if !q.LastCreated.IsZero() {
			values.Set("lastCreated", q.LastCreated.UTC().Format(time.RFC3339Nano))
		}
		if q.LastJobID > 0 {
			values.Set("lastJobId", strconv.FormatInt(q.LastJobID, 10))
		}
	}
	return values
}

type jobPostsResponse struct {
	Posts         []models.JobPosting `json:"posts"`
	TotalCount    int                 `json:"totalCount"`
	TotalPages    int                 `json:"totalPages"`
	FavoriteCount int                 `json:"favoriteCount"`
	Message       *string             `json:"message"`
}

// FetchJobPosts loads one page and normalizes the response into a PageResult.
func (c *Client) FetchJobPosts(ctx context.Context, q JobQuery) (models.PageResult, error) {
	resp, err := c.api.Get(ctx, jobsPath+"/get-job-posts", q.Values())
	if err != nil {
		return models.ErrorPage(), err
	}

	var payload jobPostsResponse
	if err := resp.DecodeJSON(&payload); err != nil {
		return models.ErrorPage(), fmt.Errorf("decode job posts: %w", err)
	}

	result := models.PageResult{
		Jobs:          payload.Posts,
		TotalCount:    payload.TotalCount,
		TotalPages:    payload.TotalPages,
		FavoriteCount: payload.FavoriteCount,
	}
	if result.Jobs == nil {
		result.Jobs = []models.JobPosting{}
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	if payload.Message != nil {
		result.Message = strings.TrimSpace(*payload.Message)
	}
	result.Cursor = cursorFromHeaders(resp.Header.Get(HeaderLastCreated), resp.Header.Get(HeaderLastJobID), resp.Header.Get(HeaderHasNextPage))
	return result, nil
}

func cursorFromHeaders(lastCreated, lastJobID, hasNext string) models.Cursor {
	var cursor models.Cursor
	if ts, err := models.ParseTimestamp(lastCreated); err == nil {
		cursor.LastCreated = ts
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(lastJobID), 10, 64); err == nil {
		cursor.LastJobID = id
	}
	cursor.HasNextPage = strings.EqualFold(strings.TrimSpace(hasNext), "true")
	return cursor
}

func setNonEmpty(values url.Values, key string, value string) {
	value = strings.TrimSpace(value)
	if value != "" {
		values.Set(key, value)
	}
}

func addAll(values url.Values, key string, items []string) {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			values.Add(key, item)
		}
	}
}
