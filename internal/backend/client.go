// Package backend wraps the job-board REST endpoints.
package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jimezsa/jobboard/internal/models"
	"github.com/jimezsa/jobboard/internal/network"
)

const (
	jobsPath      = "/api/Adzuna"
	authPath      = "/api/auth"
	favoritesPath = "/api/favorites"
)

// Client talks to the backend. Bulk exports go through a separate transport
// with a much longer timeout.
type Client struct {
	api    *network.Client
	export *network.Client
}

func New(api *network.Client, export *network.Client) *Client {
	if export == nil {
		export = api
	}
	return &Client{api: api, export: export}
}

// JobDetails loads a single posting.
func (c *Client) JobDetails(ctx context.Context, id int64) (models.JobPosting, error) {
	var job models.JobPosting
	resp, err := c.api.Get(ctx, fmt.Sprintf("%s/job-details/%d", jobsPath, id), nil)
	if err != nil {
		return job, err
	}
	if err := resp.DecodeJSON(&job); err != nil {
		return job, fmt.Errorf("decode job details: %w", err)
	}
	return job, nil
}

// Export downloads the bulk export for format ("csv" or "json").
func (c *Client) Export(ctx context.Context, format string, query url.Values) ([]byte, error) {
	resp, err := c.export.Get(ctx, fmt.Sprintf("%s/export-job-posts-%s", jobsPath, format), query)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) send(ctx context.Context, method string, path string, body any, out any) error {
	resp, err := c.api.Send(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
