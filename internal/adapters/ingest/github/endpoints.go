package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	perr "github.com/missBerg/eir-open/internal/platform/errors"
)

// Tree fetches the full recursive tree of a repo at ref
func (c *Client) Tree(ctx context.Context, owner, repo, ref string) (TreeResponse, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		c.opts.APIBase, owner, repo, url.PathEscape(ref))

	b, err := c.get(ctx, u, "application/vnd.github+json", perr.ErrorCodeDiscovery)
	if err != nil {
		return TreeResponse{}, err
	}
	var out TreeResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return TreeResponse{}, perr.Wrapf(err, perr.ErrorCodeDiscovery, "github tree decode failed for %s/%s@%s", owner, repo, ref)
	}
	if out.Truncated {
		c.log.Warn().Str("owner", owner).Str("repo", repo).Str("ref", ref).Msg("github tree listing truncated")
	}
	return out, nil
}

// RawFile fetches one file's raw contents from the raw content host
func (c *Client) RawFile(ctx context.Context, owner, repo, ref, path string) (string, error) {
	u := fmt.Sprintf("%s/%s/%s/%s/%s", c.opts.RawBase, owner, repo, url.PathEscape(ref), path)
	b, err := c.get(ctx, u, "", perr.ErrorCodeFetch)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
