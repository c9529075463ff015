package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	"git.home.luguber.info/inful/doxconf/internal/logfields"
)

func TestNewLogger_FiltersSuppressedRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LoggerOptions{Level: slog.LevelInfo, Rules: diagnostics.Default()})

	logger.Warn("Image foo.png was not found in XML_OUTPUT")
	logger.Info("Unrelated build note: 3 files processed")
	logger.Debug("hidden by level")

	require.NotContains(t, buf.String(), "XML_OUTPUT")
	require.Contains(t, buf.String(), "Unrelated build note")
	require.NotContains(t, buf.String(), "hidden by level")
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LoggerOptions{Level: slog.LevelDebug, JSON: true})

	logger.Info("hello", logfields.Target("about"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.Equal(t, "about", rec[logfields.KeyTarget])
}

func TestContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(NewLogger(&buf, LoggerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithStage(WithBuildID(context.Background(), "b-123"), "emit")
	require.Equal(t, LogContext{BuildID: "b-123", Stage: "emit"}, GetContext(ctx))

	InfoContext(ctx, "wrote conf", logfields.Path("conf.py"))

	out := buf.String()
	require.Contains(t, out, "build_id=b-123")
	require.Contains(t, out, "stage=emit")
	require.Contains(t, out, "path=conf.py")
}

func TestGetContext_Empty(t *testing.T) {
	require.Equal(t, LogContext{}, GetContext(context.Background()))
}
