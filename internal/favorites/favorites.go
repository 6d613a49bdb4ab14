// Package favorites tracks which postings the signed-in user has marked.
package favorites

import (
	"context"
	"errors"
	"sync"

	"github.com/jimezsa/jobboard/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var ErrLoginRequired = errors.New("login required to favorite jobs")

const (
	defaultRate        = 8
	defaultBurst       = 4
	defaultConcurrency = 4
)

type API interface {
	IsFavorite(ctx context.Context, id int64) (bool, error)
	AddFavorites(ctx context.Context, ids []int64) error
	RemoveFavorites(ctx context.Context, ids []int64) error
	Favorites(ctx context.Context) ([]models.JobPosting, error)
}

type Session interface {
	IsAuthenticated() bool
}

type Option func(*Controller)

// WithRate paces status checks to perSecond requests with the given burst.
func WithRate(perSecond float64, burst int) Option {
	return func(c *Controller) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

type Controller struct {
	api     API
	session Session
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu    sync.Mutex
	marks map[int64]bool
}

func New(api API, session Session, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		session: session,
		limiter: rate.NewLimiter(rate.Limit(defaultRate), defaultBurst),
		logger:  zerolog.Nop(),
		marks:   map[int64]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) authenticated() bool {
	return c.session != nil && c.session.IsAuthenticated()
}

// Load fetches the mark of each id not yet known. Nothing is requested when
// signed out. A failed check counts as not favorited.
func (c *Controller) Load(ctx context.Context, ids []int64) error {
	if !c.authenticated() {
		return nil
	}

	pending := make([]int64, 0, len(ids))
	c.mu.Lock()
	for _, id := range ids {
		if _, known := c.marks[id]; !known {
			pending = append(pending, id)
		}
	}
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultConcurrency)
	for _, id := range pending {
		id := id
		g.Go(func() error {
			if err := c.limiter.Wait(gctx); err != nil {
				return err
			}
			fav, err := c.api.IsFavorite(gctx, id)
			if err != nil {
				c.logger.Debug().Err(err).Int64("job_id", id).Msg("check favorite")
				fav = false
			}
			c.mu.Lock()
			c.marks[id] = fav
			c.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// IsFavorite returns the known mark for id.
func (c *Controller) IsFavorite(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.marks[id]
}

// Toggle flips the mark for id and persists it. The local mark is restored
// if the backend call fails.
func (c *Controller) Toggle(ctx context.Context, id int64) (bool, error) {
	if !c.authenticated() {
		return c.IsFavorite(id), ErrLoginRequired
	}

	c.mu.Lock()
	was := c.marks[id]
	c.marks[id] = !was
	c.mu.Unlock()

	var err error
	if was {
		err = c.api.RemoveFavorites(ctx, []int64{id})
	} else {
		err = c.api.AddFavorites(ctx, []int64{id})
	}
	if err != nil {
		c.mu.Lock()
		c.marks[id] = was
		c.mu.Unlock()
		return was, err
	}
	return !was, nil
}

// Add marks every id as a favorite in one request.
func (c *Controller) Add(ctx context.Context, ids []int64) error {
	return c.setMany(ctx, ids, true)
}

// Remove unmarks every id in one request.
func (c *Controller) Remove(ctx context.Context, ids []int64) error {
	return c.setMany(ctx, ids, false)
}

func (c *Controller) setMany(ctx context.Context, ids []int64, favorite bool) error {
	if !c.authenticated() {
		return ErrLoginRequired
	}
	if len(ids) == 0 {
		return nil
	}
	var err error
	if favorite {
		err = c.api.AddFavorites(ctx, ids)
	} else {
		err = c.api.RemoveFavorites(ctx, ids)
	}
	if err != nil {
		return err
	}
	c.mu.Lock()
	for _, id := range ids {
		c.marks[id] = favorite
	}
	c.mu.Unlock()
	return nil
}

// List returns every favorited posting and refreshes the local marks.
func (c *Controller) List(ctx context.Context) ([]models.JobPosting, error) {
	if !c.authenticated() {
		return nil, ErrLoginRequired
	}
	jobs, err := c.api.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	for _, job := range jobs {
		c.marks[job.ID] = true
	}
	c.mu.Unlock()
	return jobs, nil
}

// Reset forgets every mark, for use after the session ends.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.marks = map[int64]bool{}
	c.mu.Unlock()
}
