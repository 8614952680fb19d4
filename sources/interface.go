package sources

import (
	"fmt"
	"log/slog"

	"github.com/sevigo/threadr/schema"
	"github.com/sevigo/threadr/sources/markdown"
	"github.com/sevigo/threadr/sources/pdf"
	"github.com/sevigo/threadr/sources/plaintext"
)

// Registry tracks registered source plugins
type Registry interface {
	Register(plugin schema.SourcePlugin) error
	Get(format string) (schema.SourcePlugin, error)
	ForContent(format string, content string) (schema.SourcePlugin, error)
	All() []schema.SourcePlugin
}

// RegisterSourcePlugins initializes a registry populated with the built-in
// source plugins. Registration order matters: content sniffing tries the
// most specific format first, with plaintext as the catch-all.
func RegisterSourcePlugins(logger *slog.Logger) (Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := NewRegistry(logger)

	pluginFactories := []struct {
		name    string
		factory func(*slog.Logger) schema.SourcePlugin
	}{
		{"pdf", pdf.NewPDFPlugin},
		{"markdown", markdown.NewMarkdownPlugin},
		{"plaintext", plaintext.NewPlaintextPlugin},
	}

	for _, entry := range pluginFactories {
		pluginLogger := logger.With("plugin", entry.name)

		if err := registry.Register(entry.factory(pluginLogger)); err != nil {
			return registry, fmt.Errorf("failed to register plugin %s: %w", entry.name, err)
		}
	}

	logger.Info("Source plugins registered", "count", len(registry.All()))
	return registry, nil
}
