// core.go - PDF source plugin definition
package pdf

import (
	"log/slog"
	"strings"

	"github.com/sevigo/threadr/schema"
)

// pdfMagic opens every PDF regardless of version.
const pdfMagic = "%PDF-"

// PDFPlugin implements schema.SourcePlugin for PDF documents
type PDFPlugin struct {
	logger *slog.Logger
}

// NewPDFPlugin creates a new PDF source plugin
func NewPDFPlugin(logger *slog.Logger) schema.SourcePlugin {
	return &PDFPlugin{
		logger: logger,
	}
}

// Name returns "pdf" as the format name
func (p *PDFPlugin) Name() string {
	return "pdf"
}

// Aliases returns alternative format names for PDF
func (p *PDFPlugin) Aliases() []string {
	return nil
}

// CanHandle determines if this plugin covers the given format name
func (p *PDFPlugin) CanHandle(format string) bool {
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	return format == p.Name()
}

// Sniff matches the PDF magic prefix. Go strings carry the binary content
// unchanged, so the prefix check is reliable.
func (p *PDFPlugin) Sniff(content string) bool {
	return strings.HasPrefix(content, pdfMagic)
}
