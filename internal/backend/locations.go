package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jimezsa/jobboard/internal/models"
)

type locationGroupsResponse struct {
	LocationGroups []models.LocationGroup `json:"locationGroups"`
}

// LocationsSummary returns job counts grouped by location for one country.
func (c *Client) LocationsSummary(ctx context.Context, countryCode string, timeframeInWeeks int) ([]models.LocationGroup, error) {
	query := url.Values{}
	setNonEmpty(query, "countryCode", countryCode)
	query.Set("summaryMode", "true")
	query.Set("groupByLocation", "true")
	query.Set("getAll", "true")
	query.Set("timeframeInWeeks", strconv.Itoa(timeframeInWeeks))
	return c.locationGroups(ctx, query)
}

// LocationJobs returns the postings of a single location.
func (c *Client) LocationJobs(ctx context.Context, countryCode string, locationID int64, timeframeInWeeks int) ([]models.LocationGroup, error) {
	query := url.Values{}
	setNonEmpty(query, "countryCode", countryCode)
	query.Set("locationId", strconv.FormatInt(locationID, 10))
	query.Set("groupByLocation", "false")
	query.Set("getAll", "true")
	query.Set("timeframeInWeeks", strconv.Itoa(timeframeInWeeks))
	return c.locationGroups(ctx, query)
}

func (c *Client) locationGroups(ctx context.Context, query url.Values) ([]models.LocationGroup, error) {
	resp, err := c.api.Get(ctx, jobsPath+"/get-job-posts-with-coordinates", query)
	if err != nil {
		return nil, err
	}
	var payload locationGroupsResponse
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, fmt.Errorf("decode location groups: %w", err)
	}
	if payload.LocationGroups == nil {
		return []models.LocationGroup{}, nil
	}
	return payload.LocationGroups, nil
}
