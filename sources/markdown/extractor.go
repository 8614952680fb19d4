// extractor.go - Markdown to plain text reduction using goldmark
package markdown

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/threadr/schema"
)

// Extract reduces Markdown content to the plain-text article the splitter
// consumes. Inline markup dissolves into its text, block structure becomes
// paragraphs separated by blank lines, and frontmatter moves into the
// article metadata.
func (p *MarkdownPlugin) Extract(content string, name string) (schema.Article, error) {
	metadata := map[string]any{"format": p.Name()}

	body := content
	if lines := strings.Split(content, "\n"); len(lines) > 2 && lines[0] == frontMatterSeparator {
		if properties, endIdx := p.parseFrontMatter(lines); endIdx > 0 {
			for key, value := range properties {
				metadata[key] = value
			}
			body = strings.Join(lines[endIdx+1:], "\n")
		}
	}

	source := []byte(body)
	doc := p.markdown.Parser().Parse(text.NewReader(source))

	var blocks []string
	var firstHeading string

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		block := p.blockText(child, source)
		if block == "" {
			continue
		}
		blocks = append(blocks, block)

		if heading, ok := child.(*ast.Heading); ok && heading.Level == 1 && firstHeading == "" {
			firstHeading = block
		}
	}

	article := schema.NewArticle(strings.Join(blocks, "\n\n"), metadata)
	article.Title = p.deriveTitle(metadata, firstHeading, name)

	p.logger.Debug("Extracted markdown article",
		"name", name, "blocks", len(blocks), "title", article.Title)

	return article, nil
}

// blockText renders one block node as plain text.
func (p *MarkdownPlugin) blockText(node ast.Node, source []byte) string {
	switch n := node.(type) {
	case *ast.Heading:
		return p.inlineText(n, source)
	case *ast.Paragraph, *ast.TextBlock:
		return p.inlineText(node, source)
	case *ast.List:
		return p.listText(n, source)
	case *ast.Blockquote:
		return p.childBlocksText(n, source)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return p.codeText(node, source)
	case *extast.Table:
		return p.tableText(n, source)
	case *ast.ThematicBreak:
		return ""
	case *ast.HTMLBlock:
		// Raw HTML has no place in a plain-text thread.
		return ""
	default:
		return p.inlineText(node, source)
	}
}

// inlineText flattens the inline markup under a node into its visible text.
// Link text survives without its URL, autolinked URLs survive verbatim, and
// image alt text is dropped.
func (p *MarkdownPlugin) inlineText(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Image:
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			buf.Write(t.URL(source))
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.HardLineBreak() {
				buf.WriteString("\n")
			} else if t.SoftLineBreak() {
				buf.WriteString(" ")
			}
		case *ast.String:
			buf.Write(t.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// childBlocksText renders the child blocks of a container, one per line.
func (p *MarkdownPlugin) childBlocksText(node ast.Node, source []byte) string {
	var blocks []string

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if text := p.blockText(child, source); text != "" {
			blocks = append(blocks, text)
		}
	}

	return strings.Join(blocks, "\n")
}

// listText renders a list with one item per line, keeping ordered-list
// numbering and flattening nested lists below their parent item.
func (p *MarkdownPlugin) listText(list *ast.List, source []byte) string {
	var lines []string

	number := list.Start
	if !list.IsOrdered() || number <= 0 {
		number = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var own []string
		var nested []string

		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if sub, ok := child.(*ast.List); ok {
				if text := p.listText(sub, source); text != "" {
					nested = append(nested, text)
				}
				continue
			}
			if text := p.inlineText(child, source); text != "" {
				own = append(own, text)
			}
		}

		if len(own) > 0 {
			bullet := "- "
			if list.IsOrdered() {
				bullet = strconv.Itoa(number) + ". "
			}
			lines = append(lines, bullet+strings.Join(own, " "))
		}
		number++

		lines = append(lines, nested...)
	}

	return strings.Join(lines, "\n")
}

// codeText returns the verbatim lines of a code block.
func (p *MarkdownPlugin) codeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}

	return strings.TrimRight(buf.String(), "\n")
}

// tableText flattens a table row by row, cells joined with pipes.
func (p *MarkdownPlugin) tableText(table *extast.Table, source []byte) string {
	var rows []string

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if text := p.inlineText(cell, source); text != "" {
				cells = append(cells, text)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	}

	return strings.Join(rows, "\n")
}

// parseFrontMatter extracts YAML frontmatter properties. It returns the
// properties and the index of the closing separator line, or -1 when the
// frontmatter is not properly delimited.
func (p *MarkdownPlugin) parseFrontMatter(lines []string) (map[string]any, int) {
	endIdx := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == frontMatterSeparator {
			endIdx = i
			break
		}
	}

	if endIdx <= 1 {
		p.logger.Debug("Invalid frontmatter structure - no closing separator found")
		return nil, -1
	}

	yamlContent := strings.Join(lines[1:endIdx], "\n")
	properties := make(map[string]any)

	if err := yaml.Unmarshal([]byte(yamlContent), &properties); err != nil {
		p.logger.Debug("Failed to parse YAML frontmatter", "error", err)
		// Fall back to simple key-value parsing
		return p.parseSimpleFrontMatter(lines[1:endIdx]), endIdx
	}

	return properties, endIdx
}

// parseSimpleFrontMatter provides fallback parsing for malformed YAML
func (p *MarkdownPlugin) parseSimpleFrontMatter(lines []string) map[string]any {
	properties := make(map[string]any)

	for lineNum, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			p.logger.Debug("Skipping empty key in frontmatter", "line", lineNum+2)
			continue
		}

		// Strip quotes if present
		if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
			(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
			if len(value) >= 2 {
				value = value[1 : len(value)-1]
			}
		}

		properties[key] = value
	}

	return properties
}

// deriveTitle determines the article title from frontmatter, the first
// top-level heading, or the supplied name, in that order.
func (p *MarkdownPlugin) deriveTitle(metadata map[string]any, firstHeading string, name string) string {
	if title, ok := metadata["title"].(string); ok && title != "" {
		return title
	}

	if firstHeading != "" {
		return firstHeading
	}

	return titleFromName(name)
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
