package loaders

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/sevigo/threadr/schema"
	"github.com/sevigo/threadr/sources"
)

// CLICommandLoader runs a command and loads its stdout as a single article.
// The source format is sniffed from the output unless Format is set.
type CLICommandLoader struct {
	Command  string
	Args     []string
	Format   string
	Registry sources.Registry
}

// NewCLICommandLoader creates a loader that runs command with args.
func NewCLICommandLoader(registry sources.Registry, command string, args ...string) *CLICommandLoader {
	return &CLICommandLoader{
		Command:  command,
		Args:     args,
		Registry: registry,
	}
}

// Load runs the command and extracts one article from its output.
func (l *CLICommandLoader) Load(ctx context.Context) ([]schema.Article, error) {
	command := filepath.Base(l.Command)
	cmd := exec.CommandContext(ctx, command, l.Args...)
	output, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("command '%s' failed: %w\nstderr: %s", l.Command, err, string(ee.Stderr))
		}
		return nil, err
	}

	plugin, err := l.Registry.ForContent(l.Format, string(output))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source format for command output: %w", err)
	}

	article, err := plugin.Extract(string(output), "")
	if err != nil {
		return nil, fmt.Errorf("failed to extract article from command output: %w", err)
	}

	if article.Metadata == nil {
		article.Metadata = make(map[string]any)
	}
	article.Metadata["source"] = fmt.Sprintf("output of command '%s'", l.Command)

	return []schema.Article{article}, nil
}
