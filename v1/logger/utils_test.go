package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &LoggerClient{Zap: zap.New(core), tracingEnabled: tracing}, logs
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestLoggerClient_Fields(t *testing.T) {
	l, logs := newObservedLogger(false)

	l.Error("decode failed", errors.New("boom"), map[string]interface{}{"offset": 42}, map[string]interface{}{"partition": 3})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "decode failed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "boom", fields["error"])
	assert.EqualValues(t, 42, fields["offset"])
	assert.EqualValues(t, 3, fields["partition"])
}

func TestLoggerClient_Levels(t *testing.T) {
	l, logs := newObservedLogger(false)

	l.Debug("d", nil)
	l.Info("i", nil)
	l.Warn("w", nil)

	require.Equal(t, 3, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.InfoLevel, logs.All()[1].Level)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[2].Level)
}

func TestLoggerClient_WithContextAddsTraceFields(t *testing.T) {
	l, logs := newObservedLogger(true)

	l.InfoWithContext(spanContext(t), "consumed", nil)
	l.WarnWithContext(context.Background(), "no span", nil)

	require.Equal(t, 2, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])

	assert.NotContains(t, logs.All()[1].ContextMap(), "trace_id")
}

func TestLoggerClient_TracingDisabled(t *testing.T) {
	l, logs := newObservedLogger(false)

	l.ErrorWithContext(spanContext(t), "failed", errors.New("x"))

	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")
}

func TestNewLoggerClient_Level(t *testing.T) {
	l := NewLoggerClient(Config{Level: Warning, ServiceName: "kafkalens"})
	assert.False(t, l.Zap.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Zap.Core().Enabled(zapcore.WarnLevel))

	l = NewLoggerClient(Config{Level: "unknown"})
	assert.True(t, l.Zap.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Zap.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerClient_Encoding(t *testing.T) {
	console := NewLoggerClient(Config{Level: Debug, Encoding: EncodingConsole})
	assert.True(t, console.Zap.Core().Enabled(zapcore.DebugLevel))

	assert.Equal(t, "timestamp", encoderConfig(EncodingJSON).TimeKey)
	assert.Equal(t, "timestamp", encoderConfig("yaml").TimeKey)
	assert.NotEqual(t, "timestamp", encoderConfig(EncodingConsole).TimeKey)
}
