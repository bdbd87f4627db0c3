// Package github provides a small GitHub REST v3 client for manifest ingestion
package github

import (
	"context"
	"io"
	"net/http"
	"time"

	perr "github.com/missBerg/eir-open/internal/platform/errors"
	"github.com/missBerg/eir-open/internal/platform/logger"
)

const (
	apiBaseDefault = "https://api.github.com"
	rawBaseDefault = "https://raw.githubusercontent.com"
	defaultTimeout = 10 * time.Second
	defaultUA      = "eir-open-ingest"

	maxBodyBytes = 1 << 20
)

// Options configures the Client
type Options struct {
	APIBase   string
	RawBase   string
	UserAgent string
	Timeout   time.Duration

	// Optional bearer token; empty means tokenless with very low quota
	Token string
}

// Client talks to the GitHub API and the raw content host.
// Failures surface immediately so an ingest run reports them to the caller
// instead of stalling on retries
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.APIBase == "" {
		o.APIBase = apiBaseDefault
	}
	if o.RawBase == "" {
		o.RawBase = rawBaseDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("github"),
	}
}

// get issues one GET and returns the body on 2xx. Non-2xx statuses map to
// the given error code with the status in the message
func (c *Client) get(ctx context.Context, url, accept string, code perr.ErrorCode) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "github new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, code, "github request failed for %s", url)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("url", url).Msg("github close body failed")
		}
	}()

	c.log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("github http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, perr.Newf(code, "github request failed (%d) for %s", resp.StatusCode, url)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, perr.Wrapf(err, code, "github read body failed for %s", url)
	}
	return b, nil
}
