package plaintext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/threadr/sources/plaintext"
	logger "github.com/sevigo/threadr/sources/testing"
)

func TestPlaintextPlugin(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	plugin := plaintext.NewPlaintextPlugin(log)

	t.Run("BasicInfo", func(t *testing.T) {
		assert.Equal(t, "plaintext", plugin.Name())
		assert.Contains(t, plugin.Aliases(), "txt")

		assert.True(t, plugin.CanHandle("plaintext"))
		assert.True(t, plugin.CanHandle(".txt"))
		assert.True(t, plugin.CanHandle("TEXT"))
		assert.False(t, plugin.CanHandle("md"))
	})

	// Plain text is the catch-all format, so sniffing always succeeds.
	t.Run("SniffAcceptsAnything", func(t *testing.T) {
		assert.True(t, plugin.Sniff("ordinary prose"))
		assert.True(t, plugin.Sniff(""))
	})

	t.Run("ExtractPassesContentThrough", func(t *testing.T) {
		content := "First paragraph.\n\nSecond paragraph with   odd   spacing."

		article, err := plugin.Extract(content, "daily_notes.txt")
		require.NoError(t, err)

		assert.Equal(t, content, article.Content)
		assert.Equal(t, "plaintext", article.Metadata["format"])
		assert.Equal(t, "Daily Notes", article.Title)
	})

	t.Run("TitleFromFirstShortLine", func(t *testing.T) {
		article, err := plugin.Extract("Morning standup notes\n\nWe shipped the importer.", "")
		require.NoError(t, err)

		assert.Equal(t, "Morning standup notes", article.Title)
	})

	t.Run("NoTitleWhenFirstLineRunsLong", func(t *testing.T) {
		content := strings.Repeat("a", 120) + "\n\nBody follows."

		article, err := plugin.Extract(content, "")
		require.NoError(t, err)

		assert.Empty(t, article.Title)
		assert.Equal(t, content, article.Content)
	})
}
