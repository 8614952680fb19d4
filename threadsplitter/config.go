package threadsplitter

import "fmt"

// Config holds the settings for a split operation. The zero value is not
// usable; start from DefaultConfig or a platform preset and adjust fields.
type Config struct {
	// MaxUnitLength is the per-unit limit in Unicode codepoints.
	MaxUnitLength int

	// PreserveWordBoundaries keeps words whole. When false, units are cut
	// at exact codepoint offsets regardless of word structure.
	PreserveWordBoundaries bool

	// AddPositionMarkers prepends a rendered MarkerFormat to every unit of
	// a multi-unit thread. Single-unit threads are never numbered.
	AddPositionMarkers bool

	// MarkerFormat is the marker template. It must contain {current} and
	// may contain {total}, e.g. "{current}/{total}".
	MarkerFormat string

	// PreferParagraphBreaks makes the splitter favor a paragraph or line
	// break over a later space when choosing a cut point, as long as the
	// break sits deep enough into the unit.
	PreferParagraphBreaks bool
}

// DefaultConfig returns the standard settings: 280 codepoints, whole words,
// "{current}/{total}" markers.
func DefaultConfig() Config {
	return Config{
		MaxUnitLength:          DefaultMaxUnitLength,
		PreserveWordBoundaries: true,
		AddPositionMarkers:     true,
		MarkerFormat:           DefaultMarkerFormat,
	}
}

// ConfigForPlatform returns DefaultConfig adjusted to the length limit of
// the given platform.
func ConfigForPlatform(platform Platform) (Config, error) {
	cfg := DefaultConfig()

	switch platform {
	case PlatformTwitter:
		cfg.MaxUnitLength = TwitterMaxLength
	case PlatformMastodon:
		cfg.MaxUnitLength = MastodonMaxLength
	case PlatformBluesky:
		cfg.MaxUnitLength = BlueskyMaxLength
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	return cfg, nil
}
