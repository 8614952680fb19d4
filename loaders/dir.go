package loaders

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sevigo/threadr/schema"
	"github.com/sevigo/threadr/sources"
)

// maxFileSize caps how large a single article file may be.
const maxFileSize = 10 * 1024 * 1024

// DirLoader loads article files from a directory tree. Every file whose
// extension resolves to a registered source plugin becomes one Article;
// files without a plugin, binary files and common build or dependency
// directories are skipped.
type DirLoader struct {
	// path is the root of the tree to load
	path string

	// registry routes files to source plugins by extension
	registry sources.Registry

	// includeExts, when set, restricts loading to these extensions
	includeExts []string

	// logger handles structured logging throughout the load
	logger *slog.Logger
}

// Option defines functional options for configuring DirLoader.
type Option func(*DirLoader)

// WithLogger sets a custom logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(d *DirLoader) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithIncludeExts restricts loading to files with the given extensions,
// written with or without the leading dot.
func WithIncludeExts(exts []string) Option {
	return func(d *DirLoader) {
		d.includeExts = exts
	}
}

// NewDir creates a loader over the directory tree rooted at path.
func NewDir(path string, registry sources.Registry, opts ...Option) (*DirLoader, error) {
	if path == "" {
		return nil, errors.New("dir loader requires a path")
	}
	if registry == nil {
		return nil, errors.New("dir loader requires a source registry")
	}

	loader := &DirLoader{
		path:     path,
		registry: registry,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(loader)
	}

	return loader, nil
}

// Load walks the tree and extracts one Article per loadable file. Unreadable
// paths and files that fail extraction are skipped with a warning rather
// than aborting the whole load.
func (d *DirLoader) Load(ctx context.Context) ([]schema.Article, error) {
	d.logger.Info("Starting directory load", "path", d.path)

	var articles []schema.Article

	err := filepath.WalkDir(d.path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.IsDir() {
			if shouldSkipDir(entry.Name()) {
				d.logger.Debug("Skipping excluded directory", "dir", entry.Name(), "path", path)
				return filepath.SkipDir
			}
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			d.logger.Warn("Could not get file info, skipping", "path", path, "error", err)
			return nil
		}

		if shouldSkipFile(path, info) || !d.extensionIncluded(path) {
			d.logger.Debug("Skipping excluded file", "path", path, "size", info.Size())
			return nil
		}

		plugin, err := d.registry.Get(filepath.Ext(path))
		if err != nil {
			d.logger.Debug("No source plugin for file, skipping", "path", path)
			return nil
		}

		if article, ok := d.loadFile(path, info, plugin); ok {
			articles = append(articles, article)
		}

		return nil
	})
	if err != nil {
		d.logger.Error("Directory walk failed", "error", err)
		return nil, err
	}

	d.logger.Info("Directory load completed", "path", d.path, "articles", len(articles))
	return articles, nil
}

// loadFile reads and extracts a single file.
func (d *DirLoader) loadFile(path string, info fs.FileInfo, plugin schema.SourcePlugin) (schema.Article, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		d.logger.Warn("Cannot read file, skipping", "path", path, "error", err)
		return schema.Article{}, false
	}

	relPath, err := filepath.Rel(d.path, path)
	if err != nil {
		relPath = path
	}

	article, err := plugin.Extract(string(content), relPath)
	if err != nil {
		d.logger.Warn("Extraction failed, skipping file",
			"path", path, "plugin", plugin.Name(), "error", err)
		return schema.Article{}, false
	}

	if article.Metadata == nil {
		article.Metadata = make(map[string]any)
	}
	article.Metadata["source"] = relPath
	article.Metadata["file_size"] = info.Size()
	article.Metadata["mod_time"] = info.ModTime()

	d.logger.Debug("File loaded", "path", relPath, "plugin", plugin.Name(), "title", article.Title)
	return article, true
}

func (d *DirLoader) extensionIncluded(path string) bool {
	if len(d.includeExts) == 0 {
		return true
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, allowed := range d.includeExts {
		if ext == strings.TrimPrefix(strings.ToLower(allowed), ".") {
			return true
		}
	}

	return false
}

// shouldSkipDir excludes version control, dependency, build and editor
// directories from the walk.
func shouldSkipDir(name string) bool {
	skipDirs := []string{
		".git", ".svn", ".hg",
		"vendor", "node_modules", "__pycache__",
		"build", "dist", "target", "out", "bin",
		".vscode", ".idea", ".vs",
	}
	return slices.Contains(skipDirs, name)
}

// shouldSkipFile excludes files that cannot hold article text: oversized
// files and common binary formats. PDF is not listed, the registry has a
// plugin for it.
func shouldSkipFile(path string, info fs.FileInfo) bool {
	if info.Size() > maxFileSize {
		return true
	}

	binaryExts := []string{
		".exe", ".dll", ".so", ".dylib",
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".ico", ".svg",
		".zip", ".tar", ".gz", ".bz2", ".xz", ".7z",
		".mp3", ".mp4", ".mov", ".wav", ".ogg",
		".woff", ".woff2", ".ttf", ".otf",
		".bin", ".dat", ".db", ".sqlite",
	}

	return slices.Contains(binaryExts, strings.ToLower(filepath.Ext(path)))
}
