package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/kurniaw/sg-job-market-insight/internal/config"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestNewLogger_Outputs(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		wantConsole bool
		wantFile    bool
	}{
		{name: "console", output: "console", wantConsole: true},
		{name: "file", output: "file", wantFile: true},
		{name: "both", output: "both", wantConsole: true, wantFile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer
			logFile := filepath.Join(t.TempDir(), "logs", "app.log")

			logger, file, err := NewLogger(config.LoggingConfig{
				Level:    "info",
				Output:   tt.output,
				FilePath: logFile,
			}, &console)
			require.NoError(t, err)

			logger.Info("dataset loaded", slog.Int("rows", 3))
			if file != nil {
				require.NoError(t, file.Close())
			}

			assert.Equal(t, tt.wantConsole, strings.Contains(console.String(), "dataset loaded"))

			data, err := os.ReadFile(logFile)
			if !tt.wantFile {
				assert.True(t, os.IsNotExist(err))
				return
			}
			require.NoError(t, err)
			records := decodeLines(t, data)
			require.Len(t, records, 1)
			assert.Equal(t, float64(3), records[0]["rows"])
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true, wantWarn: true},
		{level: "info", wantInfo: true, wantWarn: true},
		{level: "WARNING", wantWarn: true},
		{level: "error"},
		{level: "bogus", wantInfo: true, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, _, err := NewLogger(config.LoggingConfig{Level: tt.level, Output: "console"}, &buf)
			require.NoError(t, err)

			logger.Debug("debug msg")
			logger.Info("info msg")
			logger.Warn("warn msg")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug msg"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info msg"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "warn msg"))
		})
	}
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, &buf)
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.With(slog.String("component", "jobs_service")).InfoContext(ctx, "query completed")
	logger.InfoContext(context.Background(), "no trace")

	records := decodeLines(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "trace-123", records[0]["trace_id"])
	assert.Equal(t, "jobs_service", records[0]["component"])
	assert.NotContains(t, records[1], "trace_id")
}

func TestSpanTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, &buf)
	require.NoError(t, err)

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x0a, 0x1b, 0x2c},
		SpanID:     trace.SpanID{0x01},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "query completed")
	logger.InfoContext(context.Background(), "no span")

	records := decodeLines(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, spanCtx.TraceID().String(), records[0]["span_trace_id"])
	assert.NotContains(t, records[1], "span_trace_id")
}

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logFile := filepath.Join(t.TempDir(), "app.log")
	logger, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "file", FilePath: logFile})
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.Same(t, logger, GetLogger())

	// Subsequent calls return the same instance
	again, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)
	assert.Same(t, logger, again)

	logger.Info("written to file")
	require.NoError(t, CloseLogFile())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = EnsureTraceID(ctx)
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, 36)

	// Existing IDs are kept
	assert.Equal(t, traceID, GetTraceID(EnsureTraceID(ctx)))
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithError(WithComponent(logger, "loader"), assert.AnError).Info("failed")
	WithError(logger, nil).Info("fine")

	records := decodeLines(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "loader", records[0]["component"])
	assert.Equal(t, assert.AnError.Error(), records[0]["error"])
	assert.NotContains(t, records[1], "error")
}
