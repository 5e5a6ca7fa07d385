package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davinci-studio/imagine/common"
)

func newObservedLogger(initial zapcore.Level) (Logger, *observer.ObservedLogs) {
	atom := zap.NewAtomicLevelAt(initial)
	core, logs := observer.New(atom)
	return NewZapLogger(zap.New(core), &atom), logs
}

func TestSetLevelSteersWrappedZapLogger(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.InfoLevel)

	logger.Debugf("hidden %d", 1)
	assert.Zero(t, logs.Len(), "debug must be suppressed at info level")

	logger.SetLevel(common.DebugLevel)
	logger.Debugf("visible %d", 2)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "visible 2", logs.All()[0].Message)

	logger.SetLevel(common.ErrorLevel)
	logger.Info("dropped")
	logger.Warn("dropped too")
	logger.Error("kept")
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept", logs.All()[1].Message)
}

func TestDisabledLevelSilencesEverything(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.DebugLevel)

	logger.SetLevel(common.DisabledLevel)
	logger.Error("swallowed")
	logger.Errorf("swallowed %s", "again")
	assert.Zero(t, logs.Len())
}

func TestNilAtomLeavesLevelWithHost(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core), nil)

	// SetLevel must be a safe no-op: the host keeps level control.
	logger.SetLevel(common.DebugLevel)
	logger.Debug("still hidden")
	assert.Zero(t, logs.Len())

	logger.Info("passes")
	assert.Equal(t, 1, logs.Len())
}
