// Package d1 provides a minimal client for the Cloudflare D1 HTTP query API
package d1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	perr "github.com/missBerg/eir-open/internal/platform/errors"
)

const (
	baseURLDefault = "https://api.cloudflare.com/client/v4"
	defaultTimeout = 15 * time.Second
)

// Options configures the Client
type Options struct {
	AccountID  string
	DatabaseID string
	Token      string

	// BaseURL overrides the Cloudflare API host, used by tests
	BaseURL string
	Timeout time.Duration
}

// Client issues parameterized SQL statements over the D1 HTTP API
type Client struct {
	http *http.Client
	opts Options
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
	}
}

type queryRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

type queryResponse struct {
	Success bool `json:"success"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Result []struct {
		Results []map[string]any `json:"results"`
	} `json:"result"`
}

// Query runs one statement and returns the rows of the first result set
func (c *Client) Query(ctx context.Context, sql string, params ...any) ([]map[string]any, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(queryRequest{SQL: sql, Params: params})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "d1 encode request failed")
	}

	u := fmt.Sprintf("%s/accounts/%s/d1/database/%s/query",
		c.opts.BaseURL, c.opts.AccountID, c.opts.DatabaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "d1 new request failed")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "d1 request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "d1 query failed with status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "d1 read body failed")
	}
	var out queryResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "d1 decode response failed")
	}
	if !out.Success {
		msg := "d1 query failed"
		if len(out.Errors) > 0 && out.Errors[0].Message != "" {
			msg = out.Errors[0].Message
		}
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "%s", msg)
	}
	if len(out.Result) == 0 {
		return nil, nil
	}
	return out.Result[0].Results, nil
}
