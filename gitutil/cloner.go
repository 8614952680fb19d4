package gitutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Cloner fetches remote article repositories into temporary checkouts. Only
// the working tree matters for loading articles, so checkouts are shallow,
// single-branch and tagless.
type Cloner struct {
	logger *slog.Logger
}

// NewCloner creates a new Cloner.
func NewCloner(logger *slog.Logger) *Cloner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cloner{logger: logger.With("component", "gitutil")}
}

// Clone checks out one branch of repoURL into a fresh temp directory. An
// empty branch selects the remote default. The returned cleanup removes the
// checkout; callers run it once the articles are loaded.
func (c *Cloner) Clone(ctx context.Context, repoURL string, branch string) (string, func(), error) {
	tempPath, err := os.MkdirTemp("", "threadr-repo-*")
	if err != nil {
		return "", nil, fmt.Errorf("create checkout directory: %w", err)
	}

	cleanup := func() {
		c.logger.Debug("Removing temporary checkout", "path", tempPath)
		_ = os.RemoveAll(tempPath)
	}

	opts := &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	c.logger.InfoContext(ctx, "Checking out article repository",
		"url", repoURL, "branch", branch, "path", tempPath)

	if _, err := git.PlainCloneContext(ctx, tempPath, false, opts); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("clone %s: %w", repoURL, err)
	}

	return tempPath, cleanup, nil
}
