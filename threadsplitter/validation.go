package threadsplitter

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for deterministic misconfiguration.
// A failed validation is fatal for the caller; retrying cannot succeed.
func (c Config) Validate() error {
	if err := c.validateUnitLength(); err != nil {
		return err
	}

	return c.validateMarkerFormat()
}

func (c Config) validateUnitLength() error {
	if c.MaxUnitLength <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrUnitLength, c.MaxUnitLength)
	}

	return nil
}

func (c Config) validateMarkerFormat() error {
	if !c.AddPositionMarkers {
		return nil
	}

	if !strings.Contains(c.MarkerFormat, placeholderCurrent) {
		return fmt.Errorf("%w: %q does not contain the %s placeholder",
			ErrMarkerFormat, c.MarkerFormat, placeholderCurrent)
	}

	// Splitting reserves room for a marker rendered with at least
	// minMarkerDigits digits per placeholder. If that already swallows the
	// whole unit, no content can ever fit.
	if reserved := markerWidth(c.MarkerFormat, minMarkerDigits); reserved >= c.MaxUnitLength {
		return fmt.Errorf("%w: marker %q needs %d of %d available characters",
			ErrMarkerFormat, c.MarkerFormat, reserved, c.MaxUnitLength)
	}

	return nil
}
