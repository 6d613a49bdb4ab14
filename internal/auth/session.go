package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jimezsa/jobboard/internal/backend"
	"github.com/jimezsa/jobboard/internal/events"
	"github.com/jimezsa/jobboard/internal/tokenstore"
	"github.com/rs/zerolog"
)

// Session is the signed-in user as far as the client can tell.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Authenticator exchanges credentials for a token. *backend.Client implements it.
type Authenticator interface {
	Login(ctx context.Context, creds backend.Credentials) (backend.LoginResult, error)
}

type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller owns the in-memory session and keeps it in step with the token
// store and the event bus.
type Controller struct {
	mu        sync.Mutex
	store     tokenstore.Store
	bus       *events.Bus
	api       Authenticator
	logger    zerolog.Logger
	now       func() time.Time
	session   *Session
	observers map[int]func(*Session)
	nextID    int
	unsubs    []func()
}

// NewController loads the stored token. Expired or unreadable tokens are
// cleared from the store.
func NewController(store tokenstore.Store, bus *events.Bus, api Authenticator, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		bus:       bus,
		api:       api,
		logger:    zerolog.Nop(),
		now:       time.Now,
		observers: map[int]func(*Session){},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.reload()
	if bus != nil {
		c.unsubs = append(c.unsubs,
			bus.Subscribe(events.Unauthenticated, c.signedOut),
			bus.Subscribe(events.LoggedOut, c.signedOut),
		)
	}
	return c
}

func (c *Controller) reload() {
	record, err := c.store.Get()
	if err != nil {
		c.logger.Warn().Err(err).Msg("read stored session")
		return
	}
	if record.Empty() {
		return
	}

	claims, err := DecodeToken(record.Token)
	if err == nil && claims.Expired(c.now()) {
		err = ErrTokenExpired
	}
	if err != nil {
		c.logger.Debug().Err(err).Msg("discarding stored token")
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Warn().Err(clearErr).Msg("clear stored session")
		}
		return
	}

	c.mu.Lock()
	c.session = sessionFrom(claims, record)
	c.mu.Unlock()
}

func sessionFrom(claims Claims, record tokenstore.Record) *Session {
	s := &Session{UserID: claims.UserID, Email: claims.Email, ExpiresAt: claims.ExpiresAt}
	if s.UserID == "" {
		s.UserID = record.UserID
	}
	if s.Email == "" {
		s.Email = record.Email
	}
	return s
}

// Current returns a copy of the session, or nil when signed out or expired.
func (c *Controller) Current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	if !c.session.ExpiresAt.After(c.now().Add(ExpiryGrace)) {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Controller) IsAuthenticated() bool {
	return c.Current() != nil
}

// Subscribe registers fn to run on every session change and returns a
// function removing it.
func (c *Controller) Subscribe(fn func(*Session)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Login authenticates against the backend and persists the returned token.
func (c *Controller) Login(ctx context.Context, creds backend.Credentials) (*Session, error) {
	result, err := c.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	claims, err := DecodeToken(result.AccessToken)
	if err != nil {
		return nil, err
	}
	if claims.Expired(c.now()) {
		return nil, ErrTokenExpired
	}

	record := tokenstore.Record{
		Token:  result.AccessToken,
		UserID: result.ID,
		Email:  strings.TrimSpace(result.Email),
	}
	if record.Email == "" {
		record.Email = strings.TrimSpace(creds.Email)
	}
	if err := c.store.Set(record); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	session := sessionFrom(claims, record)
	c.set(session)
	s := *session
	return &s, nil
}

// Logout clears the stored token and broadcasts LoggedOut.
func (c *Controller) Logout() error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if c.bus != nil {
		c.bus.Publish(events.LoggedOut)
		return nil
	}
	c.signedOut()
	return nil
}

// Close detaches the controller from the event bus.
func (c *Controller) Close() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}

func (c *Controller) signedOut() {
	c.set(nil)
}

func (c *Controller) set(session *Session) {
	c.mu.Lock()
	c.session = session
	observers := make([]func(*Session), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		if session == nil {
			fn(nil)
			continue
		}
		s := *session
		fn(&s)
	}
}
