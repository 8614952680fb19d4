package testing

import (
	"bytes"
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger writing into a buffer the test
// can inspect.
func NewTestLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return slog.New(handler), &buf
}
