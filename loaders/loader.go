// Package loaders turns collections of article files into schema.Article
// values ready for thread composition.
package loaders

import (
	"context"

	"github.com/sevigo/threadr/schema"
)

// Loader loads articles from some source: a directory tree, a remote
// repository, a command's output. Implementations handle source-specific
// plumbing and return the same article shape for downstream composition.
type Loader interface {
	// Load retrieves all articles the source holds. The context cancels any
	// I/O the loader performs.
	Load(ctx context.Context) ([]schema.Article, error)
}
