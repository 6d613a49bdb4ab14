package cmd

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jimezsa/jobboard/internal/config"
	"github.com/jimezsa/jobboard/internal/tokenstore"
	"github.com/jimezsa/jobboard/internal/ui"
	"github.com/rs/zerolog"
)

type cannedResponse struct {
	status int
	body   string
}

// routeDoer answers by request path and records every request.
type routeDoer struct {
	mu       sync.Mutex
	routes   map[string]cannedResponse
	requests []*fhttp.Request
}

func (d *routeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	canned, ok := d.routes[req.URL.Path]
	d.mu.Unlock()

	if !ok {
		canned = cannedResponse{status: 404, body: "not found"}
	}
	return &fhttp.Response{
		StatusCode: canned.status,
		Header:     fhttp.Header{},
		Body:       io.NopCloser(strings.NewReader(canned.body)),
		Request:    req,
	}, nil
}

// requestsTo returns the requests whose path is path.
func (d *routeDoer) requestsTo(path string) []*fhttp.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*fhttp.Request
	for _, req := range d.requests {
		if req.URL.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (d *routeDoer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "user-1",
		"email": "ada@example.com",
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

// signedInStore holds a token valid for another hour.
func signedInStore(t *testing.T) *tokenstore.Memory {
	t.Helper()
	return tokenstore.NewMemory(tokenstore.Record{
		Token:  signedToken(t, time.Now().Add(time.Hour)),
		UserID: "user-1",
		Email:  "ada@example.com",
	})
}

func newTestContext(t *testing.T, doer *routeDoer, tokens tokenstore.Store) (*Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	ctx := &Context{
		Out: out,
		Err: errOut,
		UI:  ui.New(out, errOut, ui.ColorNever, true),
		Config: config.Config{
			Environment: config.EnvLocal,
			PageSize:    10,
			TokenStore:  config.TokenStoreFile,
			ExportDir:   t.TempDir(),
		},
		ConfigDir: t.TempDir(),
		Logger:    zerolog.Nop(),
		Deps:      AppDeps{Doer: doer, Tokens: tokens},
	}
	t.Cleanup(func() {
		_ = ctx.Close()
	})
	return ctx, out, errOut
}
