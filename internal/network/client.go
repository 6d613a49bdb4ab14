package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/jimezsa/jobboard/internal/events"
	"github.com/jimezsa/jobboard/internal/tokenstore"
	"github.com/rs/zerolog"
)

var (
	ErrRequestFailed = errors.New("request failed")
	ErrUnauthorized  = errors.New("unauthorized: session expired or missing, log in again")
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultExportTimeout = 10 * time.Minute

	maxErrorBody = 512
)

// Doer sends one request. tls_client.HttpClient satisfies it; tests use fakes.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// StatusError is returned for non-2xx responses other than 401.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: http %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Insecure bool
	Proxy    string
	Tokens   tokenstore.Store
	Bus      *events.Bus
	Logger   zerolog.Logger
	// Doer replaces the tls-client transport when set.
	Doer Doer
}

// Client resolves paths against the backend base URL and applies the
// session interceptors to every request.
type Client struct {
	baseURL *url.URL
	http    Doer
	tokens  tokenstore.Store
	bus     *events.Bus
	logger  zerolog.Logger
}

// Response is a fully read response body with its metadata.
type Response struct {
	StatusCode int
	Header     fhttp.Header
	Body       []byte
}

// DecodeJSON unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) DecodeJSON(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	doer := opts.Doer
	if doer == nil {
		doer, err = newTLSClient(opts)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL: base,
		http:    doer,
		tokens:  opts.Tokens,
		bus:     opts.Bus,
		logger:  opts.Logger,
	}, nil
}

func newTLSClient(opts Options) (tls_client.HttpClient, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	jar, _ := fhttpcookiejar.New(nil)

	options := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout / time.Second)),
		tls_client.WithCookieJar(jar),
	}
	if opts.Insecure {
		options = append(options, tls_client.WithInsecureSkipVerify())
	}
	if strings.TrimSpace(opts.Proxy) != "" {
		options = append(options, tls_client.WithProxyUrl(opts.Proxy))
	}
	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Send(ctx, fhttp.MethodGet, path, query, nil)
}

// Send issues method against path. A non-nil body is sent as JSON.
func (c *Client) Send(ctx context.Context, method string, path string, query url.Values, body any) (*Response, error) {
	target := c.resolve(path, query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := fhttp.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json, text/plain, */*")
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set("x-request-id", requestID)
	c.authorize(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Err(err).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode == fhttp.StatusUnauthorized {
		c.unauthorized()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       snippet(data),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	target := *c.baseURL
	target.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

func (c *Client) authorize(req *fhttp.Request) {
	if c.tokens == nil {
		return
	}
	record, err := c.tokens.Get()
	if err != nil {
		c.logger.Warn().Err(err).Msg("read stored session")
		return
	}
	if !record.Empty() {
		req.Header.Set("authorization", "Bearer "+record.Token)
	}
}

// unauthorized clears the stored session and tells subscribers. Safe to run
// repeatedly: clearing an empty store is a no-op.
func (c *Client) unauthorized() {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Warn().Err(err).Msg("clear stored session")
		}
	}
	c.bus.Publish(events.Unauthenticated)
}

func snippet(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if len(text) > maxErrorBody {
		return text[:maxErrorBody] + "..."
	}
	return text
}
