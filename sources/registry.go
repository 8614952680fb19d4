package sources

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sevigo/threadr/schema"
)

// ErrPluginNotFound is returned when no plugin matches a format or content.
var ErrPluginNotFound = errors.New("source plugin not found")

// registry implements the Registry interface
type registry struct {
	plugins map[string]schema.SourcePlugin // Map of format name or alias to plugin
	order   []string                       // Canonical names in registration order, used for sniffing
	logger  *slog.Logger
	mu      sync.RWMutex
}

// NewRegistry creates a new source plugin registry
func NewRegistry(logger *slog.Logger) Registry {
	return &registry{
		plugins: make(map[string]schema.SourcePlugin),
		logger:  logger,
	}
}

// Register adds a source plugin to the registry
func (r *registry) Register(plugin schema.SourcePlugin) error {
	if plugin == nil {
		return errors.New("cannot register nil plugin")
	}

	name := normalizeFormat(plugin.Name())
	if name == "" {
		return errors.New("plugin must have a non-empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin with name %q already registered", name)
	}

	r.plugins[name] = plugin
	r.order = append(r.order, name)

	for _, alias := range plugin.Aliases() {
		alias = normalizeFormat(alias)
		if alias == "" || alias == name {
			continue
		}
		if _, taken := r.plugins[alias]; taken {
			return fmt.Errorf("alias %q of plugin %q already registered", alias, name)
		}
		r.plugins[alias] = plugin
	}

	r.logger.Info("Registered source plugin", "format", name, "aliases", plugin.Aliases())
	return nil
}

// Get retrieves a plugin by format name or alias
func (r *registry) Get(format string) (schema.SourcePlugin, error) {
	format = normalizeFormat(format)
	if format == "" {
		return nil, fmt.Errorf("%w: empty format", ErrPluginNotFound)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, ok := r.plugins[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, format)
	}

	return plugin, nil
}

// ForContent resolves the plugin for a piece of content. An explicit format
// wins; otherwise plugins sniff the content in registration order.
func (r *registry) ForContent(format string, content string) (schema.SourcePlugin, error) {
	if normalizeFormat(format) != "" {
		plugin, err := r.Get(format)
		if err == nil {
			return plugin, nil
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if plugin := r.plugins[name]; plugin.Sniff(content) {
			return plugin, nil
		}
	}

	return nil, fmt.Errorf("%w for the given content", ErrPluginNotFound)
}

// All returns the registered plugins in registration order
func (r *registry) All() []schema.SourcePlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugins := make([]schema.SourcePlugin, 0, len(r.order))
	for _, name := range r.order {
		plugins = append(plugins, r.plugins[name])
	}

	return plugins
}

// normalizeFormat lowercases a format name and strips a leading dot, so
// ".md", "md" and "MD" resolve alike.
func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	return strings.TrimPrefix(format, ".")
}
