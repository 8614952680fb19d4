package loaders

import (
	"context"
	"log/slog"

	"github.com/sevigo/threadr/gitutil"
	"github.com/sevigo/threadr/schema"
	"github.com/sevigo/threadr/sources"
)

// RemoteGitRepoLoader clones a remote repository and loads the article files
// of its checkout. The checkout is temporary and removed after the load.
type RemoteGitRepoLoader struct {
	RepoURL  string
	Branch   string // Empty selects the remote's default branch.
	Registry sources.Registry
	Logger   *slog.Logger
}

// NewRemoteGitRepoLoader creates a loader for the repository at repoURL.
func NewRemoteGitRepoLoader(repoURL string, registry sources.Registry, logger *slog.Logger) *RemoteGitRepoLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteGitRepoLoader{
		RepoURL:  repoURL,
		Registry: registry,
		Logger:   logger,
	}
}

// Load clones the repository, loads its articles and tags each one with the
// repository URL.
func (l *RemoteGitRepoLoader) Load(ctx context.Context) ([]schema.Article, error) {
	cloner := gitutil.NewCloner(l.Logger)
	tempPath, cleanup, err := cloner.Clone(ctx, l.RepoURL, l.Branch)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	dirLoader, err := NewDir(tempPath, l.Registry, WithLogger(l.Logger))
	if err != nil {
		return nil, err
	}

	articles, err := dirLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		articles[i].Metadata["origin_url"] = l.RepoURL
	}

	return articles, nil
}
