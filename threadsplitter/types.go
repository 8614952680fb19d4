package threadsplitter

import "errors"

// Platform identifies a target network with a known per-post length limit.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformMastodon Platform = "mastodon"
	PlatformBluesky  Platform = "bluesky"
)

// Per-post codepoint limits of the supported platforms.
const (
	TwitterMaxLength  = 280
	MastodonMaxLength = 500
	BlueskyMaxLength  = 300
)

// Constants for splitting parameters
const (
	// DefaultMaxUnitLength is the per-unit budget used when the caller does
	// not pick a platform.
	DefaultMaxUnitLength = TwitterMaxLength

	// DefaultMarkerFormat renders position markers like "2/5".
	DefaultMarkerFormat = "{current}/{total}"

	// minMarkerDigits is the digit width assumed for marker placeholders
	// before the final unit count is known.
	minMarkerDigits = 2
)

var (
	ErrUnitLength      = errors.New("invalid max unit length")
	ErrMarkerFormat    = errors.New("invalid marker format")
	ErrUnknownPlatform = errors.New("unknown platform")
)
