// Package ghrepo materializes GitHub repositories (shallow clone into a
// fresh temporary directory) and resolves default-branch commit SHAs.
package ghrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"repograph/internal/apperr"
)

const DefaultCloneTimeout = 120 * time.Second

// runGit is injectable in tests.
var runGit = func(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Materializer produces exclusive shallow checkouts.
type Materializer struct {
	// Timeout bounds the whole clone; zero means DefaultCloneTimeout.
	Timeout time.Duration
}

// Clone shallow-clones github.com/owner/name into a fresh temp directory.
// cleanup removes the checkout and must be called on every exit path. A
// deadline hit reports apperr.ErrUpstreamTimeout; any other git failure
// reports apperr.ErrCloneFailure.
func (m *Materializer) Clone(ctx context.Context, owner, name string) (dir string, cleanup func(), err error) {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = DefaultCloneTimeout
	}
	dir, err = os.MkdirTemp("", "archgraph_")
	if err != nil {
		return "", nil, fmt.Errorf("ghrepo: mkdir temp: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("https://github.com/%s/%s.git", owner, name)
	if err := runGit(cctx, "clone", "--depth", "1", "--no-single-branch", url, dir); err != nil {
		cleanup()
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return "", nil, fmt.Errorf("ghrepo: clone %s/%s: %w", owner, name, apperr.ErrUpstreamTimeout)
		}
		return "", nil, fmt.Errorf("ghrepo: clone %s/%s: %w: %v", owner, name, apperr.ErrCloneFailure, err)
	}
	return dir, cleanup, nil
}
