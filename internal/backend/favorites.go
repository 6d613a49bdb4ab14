package backend

import (
	"context"
	"fmt"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobboard/internal/models"
)

// AddFavorites marks the given postings as favorites.
func (c *Client) AddFavorites(ctx context.Context, ids []int64) error {
	return c.send(ctx, fhttp.MethodPost, favoritesPath+"/add-to-favorites", ids, nil)
}

func (c *Client) RemoveFavorites(ctx context.Context, ids []int64) error {
	return c.send(ctx, fhttp.MethodDelete, favoritesPath+"/remove-from-favorites", ids, nil)
}

func (c *Client) IsFavorite(ctx context.Context, id int64) (bool, error) {
	var payload struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := c.send(ctx, fhttp.MethodGet, fmt.Sprintf("%s/check/%d", favoritesPath, id), nil, &payload); err != nil {
		return false, err
	}
	return payload.IsFavorite, nil
}

func (c *Client) Favorites(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := c.send(ctx, fhttp.MethodGet, favoritesPath+"/get-all-favorites", nil, &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.JobPosting{}
	}
	return jobs, nil
}
