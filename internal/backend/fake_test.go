package backend

import (
	"io"
	"strings"
	"sync"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobboard/internal/network"
	"github.com/jimezsa/jobboard/internal/tokenstore"
)

type cannedResponse struct {
	status int
	header fhttp.Header
	body   string
}

// routeDoer answers by request path and records everything it saw.
type routeDoer struct {
	mu       sync.Mutex
	routes   map[string]cannedResponse
	requests []*fhttp.Request
	bodies   []string
}

func (d *routeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	body := ""
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}

	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.bodies = append(d.bodies, body)
	canned, ok := d.routes[req.URL.Path]
	d.mu.Unlock()

	if !ok {
		canned = cannedResponse{status: 404, body: "not found"}
	}
	header := canned.header
	if header == nil {
		header = fhttp.Header{}
	}
	return &fhttp.Response{
		StatusCode: canned.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(canned.body)),
		Request:    req,
	}, nil
}

func (d *routeDoer) last(t *testing.T) (*fhttp.Request, string) {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		t.Fatalf("no request recorded")
	}
	return d.requests[len(d.requests)-1], d.bodies[len(d.bodies)-1]
}

func (d *routeDoer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func newTestClient(t *testing.T, doer *routeDoer) *Client {
	t.Helper()
	api, err := network.NewClient(network.Options{
		BaseURL: "https://api.example.test",
		Tokens:  tokenstore.NewMemory(tokenstore.Record{}),
		Doer:    doer,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return New(api, nil)
}
