package composer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/threadr/schema"
	"github.com/sevigo/threadr/sources"
	"github.com/sevigo/threadr/threadsplitter"
)

// Request carries one piece of source content into the pipeline.
type Request struct {
	Content string // Raw source text in any registered format.
	Format  string // Optional explicit format name; content is sniffed when empty.
	Name    string // Optional document name, used for title derivation.
}

// Result is the outcome of composing one request.
type Result struct {
	ID          string // Fresh identifier for this composition.
	Fingerprint string // Stable digest of the normalized content.
	Article     schema.Article
	Thread      schema.Thread
	CreatedAt   time.Time
}

// Composer wires source extraction and thread splitting behind one call.
type Composer struct {
	registry sources.Registry
	splitter *threadsplitter.Splitter
	logger   *slog.Logger
}

type settings struct {
	cfg      threadsplitter.Config
	registry sources.Registry
	logger   *slog.Logger
}

type Option func(*settings)

// WithConfig sets the splitter configuration.
func WithConfig(cfg threadsplitter.Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithRegistry replaces the built-in source plugins.
func WithRegistry(registry sources.Registry) Option {
	return func(s *settings) {
		s.registry = registry
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Composer. Without options it uses the default splitter
// configuration and the built-in source plugins.
func New(opts ...Option) (*Composer, error) {
	s := settings{
		cfg:    threadsplitter.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	splitter, err := threadsplitter.New(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}

	registry := s.registry
	if registry == nil {
		registry, err = sources.RegisterSourcePlugins(s.logger)
		if err != nil {
			return nil, fmt.Errorf("composer: %w", err)
		}
	}

	return &Composer{
		registry: registry,
		splitter: splitter,
		logger:   s.logger.With("component", "composer"),
	}, nil
}

// Compose extracts the request content into a plain-text article and splits
// it into a thread. Empty content composes into an empty thread, not an
// error. The context is only consulted between pipeline stages; the stages
// themselves are synchronous in-process computations.
func (c *Composer) Compose(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plugin, err := c.registry.ForContent(req.Format, req.Content)
	if err != nil {
		return nil, fmt.Errorf("resolve source format: %w", err)
	}

	c.logger.Debug("Extracting article", "plugin", plugin.Name(), "name", req.Name)

	article, err := plugin.Extract(req.Content, req.Name)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	return c.ComposeArticle(ctx, article)
}

// ComposeArticle splits an already extracted article into a thread. Loaders
// hand their articles straight to this entry point.
func (c *Composer) ComposeArticle(ctx context.Context, article schema.Article) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	thread, err := c.splitter.Split(article.Content)
	if err != nil {
		return nil, fmt.Errorf("split article: %w", err)
	}

	result := &Result{
		ID:          uuid.NewString(),
		Fingerprint: fingerprint(article.Content),
		Article:     article,
		Thread:      thread,
		CreatedAt:   time.Now().UTC(),
	}

	c.logger.Info("Thread composed",
		"id", result.ID,
		"fingerprint", result.Fingerprint,
		"title", article.Title,
		"units", thread.Len())

	return result, nil
}

// fingerprint derives a stable short identifier from normalized content, so
// equal inputs map to equal fingerprints across calls and processes.
func fingerprint(content string) string {
	normalized := threadsplitter.Normalize(content)
	hash := sha256.Sum256([]byte(normalized))

	return hex.EncodeToString(hash[:])[:16]
}
