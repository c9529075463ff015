package diagnostics

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxconf/internal/logfields"
)

func newTestLogger(buf *bytes.Buffer, obs Observer) *slog.Logger {
	base := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewHandler(base, Default(), obs))
}

func TestHandler_DropsSuppressedLogRecords(t *testing.T) {
	var buf bytes.Buffer
	obs := &recordingObserver{}
	logger := newTestLogger(&buf, obs)

	logger.Warn("Image foo.png was not found in XML_OUTPUT")
	logger.Info("Unrelated build note: 3 files processed")

	require.NotContains(t, buf.String(), "XML_OUTPUT")
	require.Contains(t, buf.String(), "Unrelated build note: 3 files processed")
	require.Equal(t, [2]int{1, 1}, obs.seen[CategoryLogRecord])
}

func TestHandler_CategoryAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, nil)

	// Deprecation rule only applies when the record is tagged as a deprecation.
	logger.Warn("Testing an element's truth value")
	require.Contains(t, buf.String(), "truth value")

	buf.Reset()
	logger.Warn("Testing an element's truth value", logfields.Category(string(CategoryDeprecation)))
	require.Empty(t, buf.String())

	buf.Reset()
	logger.With(logfields.Category(string(CategoryDeprecation))).WithGroup("g").Warn("Testing an element's truth value")
	require.Empty(t, buf.String())
}

func TestHandler_EnabledDelegates(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(NewHandler(base, Default(), nil))

	logger.Info("below threshold")
	require.Empty(t, buf.String())
}
