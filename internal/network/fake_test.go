package network

import (
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

type recordingDoer struct {
	mu       sync.Mutex
	requests []*fhttp.Request
	status   int
	header   fhttp.Header
	body     string
}

func (d *recordingDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()

	header := d.header
	if header == nil {
		header = fhttp.Header{}
	}
	return &fhttp.Response{
		StatusCode: d.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(d.body)),
		Request:    req,
	}, nil
}
