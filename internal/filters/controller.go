package filters

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/jimezsa/jobboard/internal/models"
	"github.com/rs/zerolog"
)

// Fetcher loads the page described by a filter state.
type Fetcher interface {
	Fetch(ctx context.Context, s State) (models.PageResult, error)
}

// Snapshot is what a renderer needs: the state, the page fetched for it and
// whether a newer fetch is still running.
type Snapshot struct {
	State   State
	Result  models.PageResult
	Err     error
	Loading bool
	Seq     uint64
}

type Option func(*Controller)

// WithURLSink receives the encoded state after every mutation, replacing the
// previous query string.
func WithURLSink(fn func(url.Values)) Option {
	return func(c *Controller) {
		c.urlSink = fn
	}
}

// WithListener is called when a fetch starts and when its result is applied.
func WithListener(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.listener = fn
	}
}

// WithScopeListener is called when country or timeframe change.
func WithScopeListener(fn func(State)) Option {
	return func(c *Controller) {
		c.scopeListener = fn
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller serializes filter mutations and keeps the displayed page in step
// with the latest state. Each fetch carries a sequence number; results from
// anything but the newest fetch are dropped.
type Controller struct {
	parent  context.Context
	fetcher Fetcher

	urlSink       func(url.Values)
	listener      func(Snapshot)
	scopeListener func(State)
	logger        zerolog.Logger

	mu      sync.Mutex
	state   State
	result  models.PageResult
	err     error
	loading bool
	seq     uint64
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewController(ctx context.Context, fetcher Fetcher, initial State, opts ...Option) *Controller {
	c := &Controller{
		parent:  ctx,
		fetcher: fetcher,
		logger:  zerolog.Nop(),
		state:   initial.normalize(),
		result:  models.ErrorPage(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start performs the initial load for the current state.
func (c *Controller) Start() {
	c.mu.Lock()
	state := c.state.Clone()
	c.mu.Unlock()

	if c.scopeListener != nil {
		c.scopeListener(state)
	}
	c.refetch()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:   c.state.Clone(),
		Result:  c.result,
		Err:     c.err,
		Loading: c.loading,
		Seq:     c.seq,
	}
}

// Apply runs m against the current state. A mutation that changes nothing
// does not refetch. It reports whether the state changed.
func (c *Controller) Apply(m Mutation) bool {
	c.mu.Lock()
	prev := c.state
	next := m(prev.Clone())
	if next.Equal(prev) {
		c.mu.Unlock()
		return false
	}
	c.state = next
	c.mu.Unlock()

	if c.urlSink != nil {
		c.urlSink(Encode(next))
	}
	if c.scopeListener != nil && !next.SameScope(prev) {
		c.scopeListener(next.Clone())
	}
	c.refetch()
	return true
}

func (c *Controller) SetCountry(code string) bool       { return c.Apply(SetCountry(code)) }
func (c *Controller) SetPage(page int) bool             { return c.Apply(SetPage(page)) }
func (c *Controller) SetTimeframe(weeks int) bool       { return c.Apply(SetTimeframe(weeks)) }
func (c *Controller) SetContractType(value string) bool { return c.Apply(SetContractType(value)) }
func (c *Controller) SetContractTime(value string) bool { return c.Apply(SetContractTime(value)) }
func (c *Controller) SetWorkLocation(value string) bool { return c.Apply(SetWorkLocation(value)) }
func (c *Controller) SetTitle(value string) bool        { return c.Apply(SetTitle(value)) }
func (c *Controller) SetLocation(value string) bool     { return c.Apply(SetLocation(value)) }
func (c *Controller) SetCompany(value string) bool      { return c.Apply(SetCompany(value)) }
func (c *Controller) SetOnlyFavorites(only bool) bool   { return c.Apply(SetOnlyFavorites(only)) }
func (c *Controller) ToggleSkill(skill string) bool     { return c.Apply(ToggleSkill(skill)) }
func (c *Controller) ToggleLanguage(lang string) bool   { return c.Apply(ToggleLanguage(lang)) }
func (c *Controller) ClearAll() bool                    { return c.Apply(ClearAll()) }

func (c *Controller) ClearFilter(key Key) (bool, error) {
	m, err := ClearFilter(key)
	if err != nil {
		return false, err
	}
	return c.Apply(m), nil
}

// Refresh refetches the current state without changing it.
func (c *Controller) Refresh() {
	c.refetch()
}

// Wait blocks until every issued fetch has returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels the in-flight fetch.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) refetch() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.parent)
	c.seq++
	seq := c.seq
	state := c.state.Clone()
	c.cancel = cancel
	c.loading = true
	snapshot := c.snapshotLocked()
	c.wg.Add(1)
	c.mu.Unlock()

	c.notify(snapshot)

	go func() {
		defer c.wg.Done()
		result, err := c.fetcher.Fetch(ctx, state)
		c.finish(seq, result, err)
	}()
}

func (c *Controller) finish(seq uint64, result models.PageResult, err error) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug().Uint64("seq", seq).Msg("discarding stale page")
		return
	}
	if err != nil {
		result = models.ErrorPage()
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn().Err(err).Msg("load jobs")
		}
	}
	c.result = result
	c.err = err
	c.loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

func (c *Controller) notify(snapshot Snapshot) {
	if c.listener != nil {
		c.listener(snapshot)
	}
}
