package ghrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"repograph/internal/apperr"
)

const githubAPIBase = "https://api.github.com"

// Resolver reads repository metadata from the GitHub REST API. Resolution
// must happen strictly before any cache lookup so a new commit produces a
// fresh cache key.
type Resolver struct {
	// BaseURL overrides the GitHub API endpoint (tests). Empty means the
	// public API.
	BaseURL string
	// Token is an optional bearer token; unauthenticated works at a lower
	// rate limit.
	Token string
	// Client defaults to an 8s-timeout client.
	Client *http.Client
}

type repoInfo struct {
	DefaultBranch string `json:"default_branch"`
}

type branchInfo struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// DefaultBranchSHA resolves the current commit SHA of the repository's
// default branch. A missing repository reports apperr.ErrNotFound; a network
// timeout reports apperr.ErrUpstreamTimeout. The SHA may be empty when the
// branch lookup is unavailable; callers key caches on it as "unknown".
func (r *Resolver) DefaultBranchSHA(ctx context.Context, owner, name string) (string, error) {
	var info repoInfo
	status, err := r.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", owner, name), &info)
	if err != nil {
		return "", fmt.Errorf("ghrepo: resolve %s/%s: %w", owner, name, classify(err))
	}
	switch {
	case status == http.StatusNotFound:
		return "", fmt.Errorf("ghrepo: resolve %s/%s: %w", owner, name, apperr.ErrNotFound)
	case status != http.StatusOK:
		return "", fmt.Errorf("ghrepo: resolve %s/%s: %w: status %d", owner, name, apperr.ErrInternal, status)
	}
	branch := info.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	// Best-effort: an unresolvable branch yields an empty SHA, not an error.
	var bi branchInfo
	if status, err := r.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/branches/%s", owner, name, branch), &bi); err == nil && status == http.StatusOK {
		return bi.Commit.SHA, nil
	}
	return "", nil
}

func (r *Resolver) getJSON(ctx context.Context, path string, out any) (int, error) {
	base := r.BaseURL
	if base == "" {
		base = githubAPIBase
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, json.NewDecoder(resp.Body).Decode(out)
}

// classify maps transport errors onto the failure taxonomy.
func classify(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return apperr.ErrUpstreamTimeout
	}
	return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
}
