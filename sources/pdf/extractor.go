// extractor.go - PDF text extraction via ledongthuc/pdf
package pdf

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sevigo/threadr/schema"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	paddedBreak     = regexp.MustCompile(`\n[ \t]*\n`)
	blankLines      = regexp.MustCompile(`\n{3,}`)
)

// Extract pulls the text of every page out of a PDF document. Pages become
// paragraphs in reading order; layout beyond that is not reconstructed.
func (p *PDFPlugin) Extract(content string, name string) (schema.Article, error) {
	data := []byte(content)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return schema.Article{}, fmt.Errorf("failed to read PDF document %q: %w", name, err)
	}

	numPages := reader.NumPage()
	var pages []string

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			p.logger.Warn("Skipping null PDF page", "page", i, "name", name)
			continue
		}

		if text := p.pageText(page, i, name); text != "" {
			pages = append(pages, text)
		}
	}

	metadata := map[string]any{
		"format": p.Name(),
		"pages":  numPages,
	}

	article := schema.NewArticle(strings.Join(pages, "\n\n"), metadata)
	article.Title = p.deriveTitle(pages, name)

	p.logger.Debug("Extracted PDF article",
		"name", name, "pages", numPages, "pages_with_text", len(pages), "title", article.Title)

	return article, nil
}

// pageText renders one page, preferring the library's plain-text output and
// falling back to walking the raw text tokens.
func (p *PDFPlugin) pageText(page pdf.Page, pageNum int, name string) string {
	if text, err := page.GetPlainText(nil); err == nil && strings.TrimSpace(text) != "" {
		return cleanPageText(text)
	}

	var buf bytes.Buffer
	content := page.Content()
	for i, token := range content.Text {
		buf.WriteString(token.S)

		if i < len(content.Text)-1 && !strings.HasSuffix(token.S, " ") && !strings.HasSuffix(token.S, "\n") {
			buf.WriteString(" ")
		}
	}

	if text := buf.String(); strings.TrimSpace(text) != "" {
		return cleanPageText(text)
	}

	p.logger.Debug("No text extracted from page", "page", pageNum, "name", name)
	return ""
}

func cleanPageText(text string) string {
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = paddedBreak.ReplaceAllString(text, "\n\n")
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// deriveTitle guesses a title from the opening lines of the first page and
// falls back to the supplied name.
func (p *PDFPlugin) deriveTitle(pages []string, name string) string {
	if len(pages) > 0 {
		if title := heuristicTitle(pages[0]); title != "" {
			return title
		}
	}

	return titleFromName(name)
}

// heuristicTitle picks the first early line that is long enough to mean
// something and short enough to be a heading rather than body text.
func heuristicTitle(text string) string {
	lines := strings.SplitN(text, "\n", 5)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 10 && len(line) < 150 {
			if i < 2 || isMostlyTitleCase(line) {
				return line
			}
		}
	}

	return ""
}

func isMostlyTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}

	titleCased := 0
	for _, word := range words {
		runes := []rune(word)
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			titleCased++
		}
	}

	return float64(titleCased)/float64(len(words)) >= 0.6
}

// titleFromName creates a readable title from a file or document name.
func titleFromName(name string) string {
	if name == "" {
		return "Untitled"
	}

	title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if title == "" || title == "." {
		return "Untitled"
	}

	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")

	return cases.Title(language.English).String(title)
}
