package threadsplitter

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	newlinePattern    = regexp.MustCompile(`\r\n|\r`)
	hspacePattern     = regexp.MustCompile(`[ \t]+`)
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
)

// Normalize prepares raw text for splitting: NFC composition so codepoint
// counts are stable, \n line endings, single spaces inside lines, trimmed
// lines, and paragraph breaks collapsed to exactly one blank line.
// Normalizing already-normalized text is a no-op.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = newlinePattern.ReplaceAllString(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = hspacePattern.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankLinesPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
