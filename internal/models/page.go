package models

import "time"

// Cursor carries keyset pagination metadata between requests.
type Cursor struct {
	LastCreated time.Time `json:"lastCreated,omitempty"`
	LastJobID   int64     `json:"lastJobId,omitempty"`
	HasNextPage bool      `json:"hasNextPage"`
}

// Valid reports whether the cursor can be replayed as a request position.
func (c Cursor) Valid() bool {
	return !c.LastCreated.IsZero() && c.LastJobID > 0
}

// PageResult is the normalized view model of one page of job postings.
type PageResult struct {
	Jobs          []JobPosting `json:"jobs"`
	TotalCount    int          `json:"totalCount"`
	TotalPages    int          `json:"totalPages"`
	FavoriteCount int          `json:"favoriteCount"`
	Message       string       `json:"message,omitempty"`
	Cursor        Cursor       `json:"cursor"`
}

// ErrorPage is the result shown when a page could not be fetched.
func ErrorPage() PageResult {
	return PageResult{Jobs: []JobPosting{}, TotalPages: 1}
}

// Empty reports whether the page holds no postings.
func (p PageResult) Empty() bool {
	return len(p.Jobs) == 0
}
