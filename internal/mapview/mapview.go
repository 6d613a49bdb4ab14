package mapview

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jimezsa/jobboard/internal/geocode"
	"github.com/jimezsa/jobboard/internal/models"
	"github.com/rs/zerolog"
)

const DefaultCountry = "DE"

// TimeframeOptions are the posting windows the view offers, in weeks.
var TimeframeOptions = []int{1, 2, 3, 4}

var defaultZooms = map[string]int{
	"DE": 6, "GB": 6, "US": 4, "NL": 7, "BE": 8, "AT": 7, "CH": 7, "NO": 5, "DK": 7,
}

var (
	ErrInvalidTimeframe = errors.New("timeframe must be between 1 and 4 weeks")
	ErrBadTransition    = errors.New("transition not allowed")
)

// API is the backend surface the view needs.
type API interface {
	LocationsSummary(ctx context.Context, countryCode string, timeframeInWeeks int) ([]models.LocationGroup, error)
	LocationJobs(ctx context.Context, countryCode string, locationID int64, timeframeInWeeks int) ([]models.LocationGroup, error)
}

// View is a consistent copy of the controller state.
type View struct {
	Phase            Phase
	CountryCode      string
	TimeframeInWeeks int
	Center           geocode.Coordinate
	Zoom             int
	Groups           []models.LocationGroup
	SelectedName     string
	Jobs             []models.JobPosting
	Err              error
}

type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithGeocoder(g geocode.Geocoder) Option {
	return func(c *Controller) {
		c.geocoder = g
	}
}

// WithScope sets the initial country and timeframe. Invalid values keep the
// defaults.
func WithScope(countryCode string, weeks int) Option {
	return func(c *Controller) {
		if code := strings.ToUpper(strings.TrimSpace(countryCode)); code != "" {
			c.country = code
		}
		if slices.Contains(TimeframeOptions, weeks) {
			c.timeframe = weeks
		}
	}
}

type Controller struct {
	api      API
	geocoder geocode.Geocoder
	logger   zerolog.Logger

	mu        sync.Mutex
	phase     Phase
	country   string
	timeframe int
	groups    []models.LocationGroup
	selected  string
	jobs      []models.JobPosting
	err       error
	seq       uint64
}

func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		geocoder:  geocode.NewStatic(),
		logger:    zerolog.Nop(),
		phase:     PhaseIdle,
		country:   DefaultCountry,
		timeframe: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) moveLocked(to Phase) error {
	if !IsTransitionAllowed(c.phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, c.phase, to)
	}
	c.phase = to
	return nil
}

// Load fetches the location summary for the current country and timeframe.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if err := c.moveLocked(PhaseLoadingSummary); err != nil {
		c.mu.Unlock()
		return err
	}
	c.seq++
	seq := c.seq
	country, timeframe := c.country, c.timeframe
	c.selected = ""
	c.jobs = nil
	c.err = nil
	c.mu.Unlock()

	groups, err := c.api.LocationsSummary(ctx, country, timeframe)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug().Uint64("seq", seq).Msg("discarding stale location summary")
		return nil
	}
	if err != nil {
		c.err = fmt.Errorf("failed to load job locations: %w", err)
		c.phase = PhaseFailed
		return c.err
	}
	c.groups = groups
	c.phase = PhaseSummaryLoaded
	return nil
}

// SetCountry switches country, drops the selection and reloads.
func (c *Controller) SetCountry(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCountry
	}
	c.mu.Lock()
	c.country = code
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetTimeframe switches the posting window, drops the selection and reloads.
func (c *Controller) SetTimeframe(ctx context.Context, weeks int) error {
	if !slices.Contains(TimeframeOptions, weeks) {
		return ErrInvalidTimeframe
	}
	c.mu.Lock()
	c.timeframe = weeks
	c.mu.Unlock()
	return c.Load(ctx)
}

// Select loads the postings of group. Groups without a location id are
// ignored.
func (c *Controller) Select(ctx context.Context, group models.LocationGroup) error {
	if group.LocationID == 0 {
		return nil
	}

	c.mu.Lock()
	if err := c.moveLocked(PhaseLoadingLocation); err != nil {
		c.mu.Unlock()
		return err
	}
	c.seq++
	seq := c.seq
	country, timeframe := c.country, c.timeframe
	c.selected = group.LocationName
	c.err = nil
	c.mu.Unlock()

	groups, err := c.api.LocationJobs(ctx, country, group.LocationID, timeframe)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug().Uint64("seq", seq).Msg("discarding stale location jobs")
		return nil
	}
	if err != nil {
		c.err = fmt.Errorf("failed to load jobs for %s: %w", group.LocationName, err)
		c.phase = PhaseFailed
		return c.err
	}
	jobs := make([]models.JobPosting, 0)
	for _, g := range groups {
		jobs = append(jobs, g.JobPosts...)
	}
	c.jobs = jobs
	c.phase = PhaseLocationJobsLoaded
	return nil
}

// SelectByID selects the summary group with id.
func (c *Controller) SelectByID(ctx context.Context, id int64) error {
	c.mu.Lock()
	var found *models.LocationGroup
	for i := range c.groups {
		if c.groups[i].LocationID == id {
			g := c.groups[i]
			found = &g
			break
		}
	}
	c.mu.Unlock()
	if found == nil {
		return fmt.Errorf("location %d not in summary", id)
	}
	return c.Select(ctx, *found)
}

// ClearSelection returns to the summary.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseLocationJobsLoaded {
		return
	}
	c.selected = ""
	c.jobs = nil
	c.phase = PhaseSummaryLoaded
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	center, _ := geocode.CountryCentroid(c.country)
	zoom, ok := defaultZooms[c.country]
	if !ok {
		zoom = 6
	}
	return View{
		Phase:            c.phase,
		CountryCode:      c.country,
		TimeframeInWeeks: c.timeframe,
		Center:           center,
		Zoom:             zoom,
		Groups:           slices.Clone(c.groups),
		SelectedName:     c.selected,
		Jobs:             slices.Clone(c.jobs),
		Err:              c.err,
	}
}
