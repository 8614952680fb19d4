package plaintext

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sevigo/threadr/schema"
)

// maxTitleLength caps how long a leading line may be to double as a title.
const maxTitleLength = 80

// PlaintextPlugin implements schema.SourcePlugin for plain text content
type PlaintextPlugin struct {
	logger *slog.Logger
}

// NewPlaintextPlugin creates a new plain text source plugin
func NewPlaintextPlugin(logger *slog.Logger) schema.SourcePlugin {
	return &PlaintextPlugin{
		logger: logger,
	}
}

// Name returns "plaintext" as the format name
func (p *PlaintextPlugin) Name() string {
	return "plaintext"
}

// Aliases returns alternative format names for plain text
func (p *PlaintextPlugin) Aliases() []string {
	return []string{"text", "txt"}
}

// CanHandle determines if this plugin covers the given format name
func (p *PlaintextPlugin) CanHandle(format string) bool {
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if format == p.Name() {
		return true
	}

	for _, alias := range p.Aliases() {
		if format == alias {
			return true
		}
	}

	return false
}

// Sniff accepts any content; plain text is the catch-all format.
func (p *PlaintextPlugin) Sniff(content string) bool {
	return true
}

// Extract passes the content through untouched and derives a title from the
// supplied name, or from a short first line when no name is given.
func (p *PlaintextPlugin) Extract(content string, name string) (schema.Article, error) {
	article := schema.NewArticle(content, map[string]any{"format": p.Name()})
	article.Title = p.deriveTitle(content, name)

	p.logger.Debug("Extracted plaintext article", "name", name, "title", article.Title)

	return article, nil
}

func (p *PlaintextPlugin) deriveTitle(content string, name string) string {
	if name != "" {
		title := name
		if idx := strings.LastIndex(title, "."); idx > 0 {
			title = title[:idx]
		}
		title = strings.ReplaceAll(title, "_", " ")
		title = strings.ReplaceAll(title, "-", " ")

		return cases.Title(language.English).String(title)
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= maxTitleLength {
			return line
		}
		break
	}

	return ""
}
