// core.go - Plugin surface with goldmark integration
package markdown

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sevigo/threadr/schema"
)

const frontMatterSeparator = "---"

var (
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	linkPattern    = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
)

// MarkdownPlugin implements schema.SourcePlugin for Markdown content using goldmark
type MarkdownPlugin struct {
	logger   *slog.Logger
	markdown goldmark.Markdown
}

// NewMarkdownPlugin creates a new Markdown source plugin with goldmark
func NewMarkdownPlugin(logger *slog.Logger) schema.SourcePlugin {
	return &MarkdownPlugin{
		logger: logger,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM, // Tables, strikethrough, autolinks, task lists
			),
		),
	}
}

// Name returns "markdown" as the format name
func (p *MarkdownPlugin) Name() string {
	return "markdown"
}

// Aliases returns alternative format names for Markdown
func (p *MarkdownPlugin) Aliases() []string {
	return []string{"md", "gfm", "mdown"}
}

// CanHandle determines if this plugin covers the given format name
func (p *MarkdownPlugin) CanHandle(format string) bool {
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

// Sniff reports whether the content looks like Markdown.
func (p *MarkdownPlugin) Sniff(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}

	if strings.HasPrefix(trimmed, frontMatterSeparator+"\n") {
		return true
	}
	if strings.Contains(trimmed, "```") {
		return true
	}
	if headingPattern.MatchString(trimmed) {
		return true
	}

	return linkPattern.MatchString(trimmed)
}
