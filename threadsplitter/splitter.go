package threadsplitter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sevigo/threadr/schema"
)

// Splitter turns long-form text into an ordered sequence of post-sized
// units. All length checks count Unicode codepoints, so emoji and non-Latin
// scripts count once per character regardless of their encoded size.
//
// A Splitter is pure: it performs no I/O, keeps no state between calls, and
// may be shared across goroutines.
type Splitter struct {
	cfg Config
}

// New creates a Splitter for the given configuration.
func New(cfg Config) (*Splitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Splitter{cfg: cfg}, nil
}

// Split normalizes text and partitions it into units that respect the
// configured length limit. Empty or whitespace-only input yields an empty
// thread. Text that fits into a single unit is returned as one unit with no
// marker, markers being meaningless on a thread of one.
//
// A single unbreakable token longer than the limit is returned whole as its
// own unit with ExceedsLimit set; content is never cut inside a word while
// PreserveWordBoundaries is on.
func (s *Splitter) Split(text string) (schema.Thread, error) {
	if err := s.cfg.Validate(); err != nil {
		return schema.Thread{}, err
	}

	normalized := Normalize(text)
	if normalized == "" {
		return schema.Thread{}, nil
	}

	runes := []rune(normalized)
	if len(runes) <= s.cfg.MaxUnitLength {
		return schema.Thread{Units: []schema.Unit{{
			Text:   normalized,
			Order:  1,
			Length: len(runes),
		}}}, nil
	}

	chunks, err := s.chunkWithReservation(runes)
	if err != nil {
		return schema.Thread{}, err
	}

	return s.buildThread(chunks), nil
}

// chunkWithReservation splits the runes with marker space held back. The
// reservation assumes minMarkerDigits digits per placeholder and widens
// until it covers the digits of the actual unit count, so a late growth in
// total never pushes a marked unit past the limit.
func (s *Splitter) chunkWithReservation(runes []rune) ([]string, error) {
	digits := minMarkerDigits

	for {
		reserved := 0
		if s.cfg.AddPositionMarkers {
			reserved = markerWidth(s.cfg.MarkerFormat, digits)
		}

		effective := s.cfg.MaxUnitLength - reserved
		if effective <= 0 {
			return nil, fmt.Errorf("%w: reserving %d of %d characters for markers leaves no room for content",
				ErrMarkerFormat, reserved, s.cfg.MaxUnitLength)
		}

		chunks := s.chunk(runes, effective)

		if !s.cfg.AddPositionMarkers || digitCount(len(chunks)) <= digits {
			return chunks, nil
		}

		digits = digitCount(len(chunks))
	}
}

// chunk greedily partitions runes into pieces of at most effective
// codepoints, except for single tokens that are longer on their own.
func (s *Splitter) chunk(runes []rune, effective int) []string {
	var chunks []string

	pos := 0
	for pos < len(runes) {
		for pos < len(runes) && unicode.IsSpace(runes[pos]) {
			pos++
		}
		if pos >= len(runes) {
			break
		}

		if len(runes)-pos <= effective {
			chunks = appendChunk(chunks, runes[pos:])
			break
		}

		end := pos + effective
		if !s.cfg.PreserveWordBoundaries {
			chunks = appendChunk(chunks, runes[pos:end])
			pos = end
			continue
		}

		// The window ends exactly on a word end.
		if unicode.IsSpace(runes[end]) {
			chunks = appendChunk(chunks, runes[pos:end])
			pos = end
			continue
		}

		cut := s.findCut(runes, pos, end)
		if cut < 0 {
			// A single token fills the whole window. Emit it whole rather
			// than cutting inside it; buildThread flags the oversize.
			tokenEnd := end
			for tokenEnd < len(runes) && !unicode.IsSpace(runes[tokenEnd]) {
				tokenEnd++
			}
			chunks = appendChunk(chunks, runes[pos:tokenEnd])
			pos = tokenEnd
			continue
		}

		chunks = appendChunk(chunks, runes[pos:cut])
		pos = cut
	}

	return chunks
}

// findCut picks the boundary to cut at inside the window (pos, end), or -1
// when the window holds no boundary at all.
func (s *Splitter) findCut(runes []rune, pos, end int) int {
	if s.cfg.PreferParagraphBreaks {
		// A structural break beats a later space, but only past the middle
		// of the window; a break found earlier would leave a fragment.
		minDepth := pos + (end-pos)/2

		if cut := lastParagraphBreak(runes, pos, end); cut > minDepth {
			return cut
		}
		if cut := lastLineBreak(runes, pos, end); cut > minDepth {
			return cut
		}
	}

	for i := end - 1; i > pos; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}

	return -1
}

func lastParagraphBreak(runes []rune, pos, end int) int {
	for i := end - 1; i > pos+1; i-- {
		if runes[i] == '\n' && runes[i-1] == '\n' {
			return i - 1
		}
	}

	return -1
}

func lastLineBreak(runes []rune, pos, end int) int {
	for i := end - 1; i > pos; i-- {
		if runes[i] == '\n' {
			return i
		}
	}

	return -1
}

// buildThread renders chunks into ordered units, prepending markers when
// they are enabled and the thread has more than one unit.
func (s *Splitter) buildThread(chunks []string) schema.Thread {
	total := len(chunks)
	withMarkers := s.cfg.AddPositionMarkers && total > 1

	units := make([]schema.Unit, 0, total)
	for i, chunk := range chunks {
		text := chunk
		if withMarkers {
			text = applyMarker(s.cfg.MarkerFormat, i+1, total, chunk)
		}

		length := utf8.RuneCountInString(text)
		units = append(units, schema.Unit{
			Text:         text,
			Order:        i + 1,
			Length:       length,
			ExceedsLimit: length > s.cfg.MaxUnitLength,
		})
	}

	return schema.Thread{Units: units}
}

func appendChunk(chunks []string, chunk []rune) []string {
	text := strings.TrimSpace(string(chunk))
	if text == "" {
		return chunks
	}

	return append(chunks, text)
}
