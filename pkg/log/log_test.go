package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/fileformat/pkg/log"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  slog.Level
		err   error
	}{
		"error":   {input: "error", want: slog.LevelError},
		"warn":    {input: "WARN", want: slog.LevelWarn},
		"warning": {input: "warning", want: slog.LevelWarn},
		"info":    {input: "info", want: slog.LevelInfo},
		"debug":   {input: "Debug", want: slog.LevelDebug},
		"unknown": {input: "trace", err: log.ErrUnknownLogLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.GetLevel(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level, format string
		contains      string
		err           error
	}{
		"json":           {level: "info", format: "json", contains: `"msg":"hello"`},
		"logfmt":         {level: "info", format: "logfmt", contains: "msg=hello"},
		"text":           {level: "info", format: "text", contains: "hello"},
		"bad level":      {level: "loud", format: "json", err: log.ErrUnknownLogLevel},
		"bad format":     {level: "info", format: "xml", err: log.ErrUnknownLogFormat},
		"filtered level": {level: "error", format: "json"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.CreateHandlerWithStrings(&buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			slog.New(h).Info("hello")

			if tc.contains == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tc.contains)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Default(), log.WithContext(context.Background()))

	traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0123456789abcdef")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	assert.NotEqual(t, slog.Default(), log.WithContext(ctx))
}

func TestSize(t *testing.T) {
	t.Parallel()

	attr := log.Size("size", 1200)
	assert.Equal(t, "size", attr.Key)
	assert.Equal(t, "1.2 kB", attr.Value.String())
}
