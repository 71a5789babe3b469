package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeWithWriter_LevelFollowsVerbosity(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	tests := []struct {
		name      string
		verbosity int
		wantInfo  bool
		wantDebug bool
	}{
		{name: "default shows warnings only", verbosity: 0},
		{name: "-v shows info", verbosity: 1, wantInfo: true},
		{name: "-vv shows debug", verbosity: 2, wantInfo: true, wantDebug: true},
		{name: "-vvvv stays at debug", verbosity: 4, wantInfo: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, InitializeWithWriter(tt.verbosity, &buf))
			assert.Equal(t, tt.verbosity, Verbosity)

			Infow("info line")
			Debugw("debug line")
			Warnw("warn line")
			Cleanup()

			out := buf.String()
			assert.Contains(t, out, "warn line")
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")), out)
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")), out)
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(9))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "All (-vvvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-3))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(0, OutputResults))
	assert.False(t, ShouldOutput(0, OutputHTTPCalls))
	assert.False(t, ShouldOutput(1, OutputHTTPCalls))
	assert.True(t, ShouldOutput(2, OutputHTTPCalls))
	assert.False(t, ShouldOutput(3, OutputResponseBody))
	assert.True(t, ShouldOutput(4, OutputResponseBody))

	// unknown categories need full verbosity
	assert.False(t, ShouldOutput(3, OutputCategory(99)))
	assert.True(t, ShouldOutput(4, OutputCategory(99)))
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	original := Logger
	Logger = zap.New(core).Sugar()
	t.Cleanup(func() { Logger = original })

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithComponent(ctx, "api")
	LoggerFromContext(ctx).Debugw("sent")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields[FieldRequestID])
	assert.Equal(t, "api", fields[FieldComponent])
}

func TestLoggerFromContext_NoFields(t *testing.T) {
	assert.Empty(t, FieldsFromContext(context.Background()))
	assert.Same(t, Logger, LoggerFromContext(context.Background()))
}
