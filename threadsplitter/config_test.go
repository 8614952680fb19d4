package threadsplitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/threadr/threadsplitter"
)

func TestConfigValidation(t *testing.T) {
	t.Run("DefaultConfigIsValid", func(t *testing.T) {
		cfg := threadsplitter.DefaultConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 280, cfg.MaxUnitLength)
		assert.True(t, cfg.PreserveWordBoundaries)
		assert.True(t, cfg.AddPositionMarkers)
		assert.Equal(t, "{current}/{total}", cfg.MarkerFormat)
	})

	t.Run("ZeroConfigRejected", func(t *testing.T) {
		_, err := threadsplitter.New(threadsplitter.Config{})
		require.Error(t, err)
		assert.ErrorIs(t, err, threadsplitter.ErrUnitLength)
	})

	t.Run("NegativeUnitLengthRejected", func(t *testing.T) {
		cfg := threadsplitter.DefaultConfig()
		cfg.MaxUnitLength = -5

		_, err := threadsplitter.New(cfg)
		assert.ErrorIs(t, err, threadsplitter.ErrUnitLength)
	})

	t.Run("MarkerFormatNeedsCurrentPlaceholder", func(t *testing.T) {
		cfg := threadsplitter.DefaultConfig()
		cfg.MarkerFormat = "thread position unknown"

		_, err := threadsplitter.New(cfg)
		assert.ErrorIs(t, err, threadsplitter.ErrMarkerFormat)
	})

	// "99/99 " already needs six characters; a six-character unit leaves no
	// room for content.
	t.Run("MarkerMustLeaveContentRoom", func(t *testing.T) {
		cfg := threadsplitter.DefaultConfig()
		cfg.MaxUnitLength = 6

		_, err := threadsplitter.New(cfg)
		assert.ErrorIs(t, err, threadsplitter.ErrMarkerFormat)
	})

	t.Run("TinyLimitValidWithoutMarkers", func(t *testing.T) {
		cfg := threadsplitter.DefaultConfig()
		cfg.MaxUnitLength = 6
		cfg.AddPositionMarkers = false

		_, err := threadsplitter.New(cfg)
		assert.NoError(t, err)
	})
}

func TestConfigForPlatform(t *testing.T) {
	t.Run("KnownPlatforms", func(t *testing.T) {
		cases := []struct {
			platform threadsplitter.Platform
			limit    int
		}{
			{threadsplitter.PlatformTwitter, 280},
			{threadsplitter.PlatformMastodon, 500},
			{threadsplitter.PlatformBluesky, 300},
		}

		for _, tc := range cases {
			cfg, err := threadsplitter.ConfigForPlatform(tc.platform)
			require.NoError(t, err)
			assert.Equal(t, tc.limit, cfg.MaxUnitLength)
			assert.True(t, cfg.AddPositionMarkers)
		}
	})

	t.Run("UnknownPlatform", func(t *testing.T) {
		_, err := threadsplitter.ConfigForPlatform("friendster")
		assert.ErrorIs(t, err, threadsplitter.ErrUnknownPlatform)
	})
}
