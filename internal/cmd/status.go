package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/jobboard/internal/backend"
	"github.com/jimezsa/jobboard/internal/network"
	"github.com/jimezsa/jobboard/internal/tokenstore"
)

type StatusCmd struct {
	Timeout int `help:"Timeout in seconds." default:"15"`
}

type StatusResult struct {
	BaseURL    string `json:"base_url"`
	Env        string `json:"environment"`
	TokenStore string `json:"token_store"`
	SignedInAs string `json:"signed_in_as,omitempty"`
	Status     string `json:"status"`
	LatencyMS  int64  `json:"latency_ms"`
	Error      string `json:"error,omitempty"`
}

func (s *StatusCmd) Run(ctx *Context) error {
	app, err := ctx.Services()
	if err != nil {
		return err
	}

	result := StatusResult{
		BaseURL:    ctx.Config.BaseURL(),
		Env:        ctx.Config.Environment,
		TokenStore: ctx.Config.TokenStore,
	}
	if file, ok := app.Tokens.(*tokenstore.File); ok {
		result.TokenStore = fmt.Sprintf("file %s", file.Path())
	}
	if session := app.Session.Current(); session != nil {
		result.SignedInAs = session.Email
	}

	runCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.Timeout)*time.Second)
	defer cancel()

	start := time.Now()
	_, err = app.Backend.Facet(runCtx, "countries", backend.FacetScope{})
	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = probeStatus(err)
	if err != nil {
		result.Error = err.Error()
	}

	return writeStatus(ctx, result)
}

// probeStatus names the outcome of the reachability probe. A 401 still
// proves the backend answered.
func probeStatus(err error) string {
	var statusErr *network.StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, network.ErrUnauthorized):
		return "reachable (401)"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("http %d", statusErr.StatusCode)
	default:
		return "unreachable"
	}
}

func writeStatus(ctx *Context, result StatusResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if ctx.PlainText {
		line := []string{result.BaseURL, result.Status, fmt.Sprintf("%d", result.LatencyMS), result.SignedInAs, result.Error}
		_, err := fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		return err
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "backend\t%s\n", result.BaseURL)
	fmt.Fprintf(tw, "environment\t%s\n", result.Env)
	fmt.Fprintf(tw, "token store\t%s\n", result.TokenStore)
	signedIn := result.SignedInAs
	if signedIn == "" {
		signedIn = "(signed out)"
	}
	fmt.Fprintf(tw, "session\t%s\n", signedIn)
	fmt.Fprintf(tw, "status\t%s\n", result.Status)
	fmt.Fprintf(tw, "latency_ms\t%d\n", result.LatencyMS)
	if result.Error != "" {
		fmt.Fprintf(tw, "error\t%s\n", result.Error)
	}
	return tw.Flush()
}
