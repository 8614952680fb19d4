package composer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/threadr/composer"
	"github.com/sevigo/threadr/schema"
	fakesource "github.com/sevigo/threadr/schema/fake"
	"github.com/sevigo/threadr/sources"
	srctesting "github.com/sevigo/threadr/sources/testing"
	"github.com/sevigo/threadr/threadsplitter"
)

func TestComposer_Compose(t *testing.T) {
	ctx := context.Background()

	t.Run("Markdown article through the default pipeline", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		c, err := composer.New(composer.WithLogger(log))
		require.NoError(t, err)

		content := `# Release Notes

The new version ships [faster parsing](https://example.com/blog) and better defaults.`

		result, err := c.Compose(ctx, composer.Request{
			Content: content,
			Format:  "markdown",
			Name:    "release-notes.md",
		})
		require.NoError(t, err)

		assert.Equal(t, "Release Notes", result.Article.Title)
		assert.Contains(t, result.Article.Content, "faster parsing")
		assert.NotContains(t, result.Article.Content, "https://example.com/blog",
			"link URLs should dissolve into their text")

		require.Equal(t, 1, result.Thread.Len())
		assert.False(t, result.Thread.Units[0].ExceedsLimit)

		_, err = uuid.Parse(result.ID)
		assert.NoError(t, err, "result ID should be a valid UUID")
		assert.Len(t, result.Fingerprint, 16)
		assert.False(t, result.CreatedAt.IsZero())
	})

	t.Run("Long plaintext article gets a numbered thread", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		c, err := composer.New(composer.WithLogger(log))
		require.NoError(t, err)

		// No explicit format: plain prose should fall through to the
		// plaintext plugin via sniffing.
		content := strings.TrimSpace(strings.Repeat("word ", 120))

		result, err := c.Compose(ctx, composer.Request{Content: content})
		require.NoError(t, err)

		require.Equal(t, 3, result.Thread.Len())
		for i, unit := range result.Thread.Units {
			assert.True(t, strings.HasPrefix(unit.Text, fmt.Sprintf("%d/3 ", i+1)))
			assert.LessOrEqual(t, unit.Length, 280)
		}
	})

	t.Run("Fingerprint is stable, IDs are fresh", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		c, err := composer.New(composer.WithLogger(log))
		require.NoError(t, err)

		first, err := c.Compose(ctx, composer.Request{Content: "same   article text"})
		require.NoError(t, err)

		// Differs only in whitespace, which normalization removes.
		second, err := c.Compose(ctx, composer.Request{Content: "same article text\n"})
		require.NoError(t, err)

		assert.Equal(t, first.Fingerprint, second.Fingerprint)
		assert.NotEqual(t, first.ID, second.ID)

		other, err := c.Compose(ctx, composer.Request{Content: "a different article"})
		require.NoError(t, err)
		assert.NotEqual(t, first.Fingerprint, other.Fingerprint)
	})

	t.Run("Fake source receives the request", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		registry := sources.NewRegistry(log)
		src := fakesource.NewSource("fake")
		require.NoError(t, registry.Register(src))

		c, err := composer.New(composer.WithRegistry(registry), composer.WithLogger(log))
		require.NoError(t, err)

		result, err := c.Compose(ctx, composer.Request{
			Content: "short text",
			Format:  "fake",
			Name:    "doc",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, src.ExtractCalls())
		content, name := src.LastExtract()
		assert.Equal(t, "short text", content)
		assert.Equal(t, "doc", name)
		assert.Equal(t, 1, result.Thread.Len())
	})

	t.Run("Extraction error propagates", func(t *testing.T) {
		extractErr := errors.New("broken input")

		log, _ := srctesting.NewTestLogger(t)
		registry := sources.NewRegistry(log)
		src := fakesource.NewSource("fake")
		src.ErrToReturn = extractErr
		require.NoError(t, registry.Register(src))

		c, err := composer.New(composer.WithRegistry(registry), composer.WithLogger(log))
		require.NoError(t, err)

		_, err = c.Compose(ctx, composer.Request{Content: "anything", Format: "fake"})
		require.Error(t, err)
		assert.ErrorIs(t, err, extractErr)
		assert.Contains(t, err.Error(), "extract article")
	})

	t.Run("Unknown format with no sniffer match", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		registry := sources.NewRegistry(log)
		src := fakesource.NewSource("fake") // SniffResult stays false
		require.NoError(t, registry.Register(src))

		c, err := composer.New(composer.WithRegistry(registry), composer.WithLogger(log))
		require.NoError(t, err)

		_, err = c.Compose(ctx, composer.Request{Content: "anything", Format: "unknown"})
		require.Error(t, err)
		assert.ErrorIs(t, err, sources.ErrPluginNotFound)
		assert.Contains(t, err.Error(), "resolve source format")
	})

	t.Run("Empty content composes an empty thread", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		c, err := composer.New(composer.WithLogger(log))
		require.NoError(t, err)

		result, err := c.Compose(ctx, composer.Request{Content: ""})
		require.NoError(t, err)
		assert.True(t, result.Thread.IsEmpty())
	})

	t.Run("Preextracted article keeps its identity", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		c, err := composer.New(composer.WithLogger(log))
		require.NoError(t, err)

		article := schema.NewArticle("Already extracted body text.", map[string]any{"source": "posts/a.md"})
		article.Title = "Loader Title"

		result, err := c.ComposeArticle(ctx, article)
		require.NoError(t, err)

		assert.Equal(t, "Loader Title", result.Article.Title)
		assert.Equal(t, "posts/a.md", result.Article.Metadata["source"])
		require.Equal(t, 1, result.Thread.Len())
		assert.Equal(t, "Already extracted body text.", result.Thread.Units[0].Text)
	})

	t.Run("Cancelled context stops the pipeline", func(t *testing.T) {
		log, _ := srctesting.NewTestLogger(t)
		c, err := composer.New(composer.WithLogger(log))
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = c.Compose(cancelled, composer.Request{Content: "anything"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestComposer_New(t *testing.T) {
	t.Run("Invalid splitter configuration fails construction", func(t *testing.T) {
		cfg := threadsplitter.DefaultConfig()
		cfg.MaxUnitLength = 0

		_, err := composer.New(composer.WithConfig(cfg))
		require.Error(t, err)
		assert.ErrorIs(t, err, threadsplitter.ErrUnitLength)
	})

	t.Run("Platform preset flows through", func(t *testing.T) {
		ctx := context.Background()

		cfg, err := threadsplitter.ConfigForPlatform(threadsplitter.PlatformMastodon)
		require.NoError(t, err)

		log, _ := srctesting.NewTestLogger(t)
		c, err := composer.New(composer.WithConfig(cfg), composer.WithLogger(log))
		require.NoError(t, err)

		// 599 codepoints fit Mastodon's 500 only when split in two.
		result, err := c.Compose(ctx, composer.Request{
			Content: strings.TrimSpace(strings.Repeat("word ", 120)),
		})
		require.NoError(t, err)

		require.Equal(t, 2, result.Thread.Len())
		for _, unit := range result.Thread.Units {
			assert.LessOrEqual(t, unit.Length, 500)
		}
	})
}
