package threadsplitter

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	placeholderCurrent = "{current}"
	placeholderTotal   = "{total}"

	// markerSeparator joins a rendered marker and the unit content.
	markerSeparator = " "
)

// renderMarker substitutes the position placeholders in format.
func renderMarker(format string, current, total int) string {
	marker := strings.ReplaceAll(format, placeholderCurrent, strconv.Itoa(current))
	marker = strings.ReplaceAll(marker, placeholderTotal, strconv.Itoa(total))

	return marker
}

// applyMarker prepends the rendered marker for the given position to text.
func applyMarker(format string, current, total int, text string) string {
	return renderMarker(format, current, total) + markerSeparator + text
}

// markerWidth is the codepoint cost of a marker whose placeholders are both
// rendered with the widest number of the given digit count, separator
// included. Reserving this much guarantees any marker up to that digit
// count fits.
func markerWidth(format string, digits int) int {
	widest := maxNumberForDigits(digits)

	return utf8.RuneCountInString(applyMarker(format, widest, widest, ""))
}

// maxNumberForDigits returns the largest value with the given number of
// decimal digits, e.g. 99 for 2.
func maxNumberForDigits(digits int) int {
	n := 1
	for i := 0; i < digits; i++ {
		n *= 10
	}

	return n - 1
}

// digitCount returns the number of decimal digits in n.
func digitCount(n int) int {
	count := 1
	for n >= 10 {
		n /= 10
		count++
	}

	return count
}
