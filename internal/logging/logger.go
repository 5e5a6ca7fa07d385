package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/davinci-studio/imagine/common"
)

// Logger is the pluggable logging surface used throughout the library.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	SetLevel(level common.LogLevel)
}

// silencedLevel sits above Fatal so nothing is emitted until a caller opts in
// via SetLevel. Library consumers get a quiet logger by default.
const silencedLevel = zapcore.FatalLevel + 1

type zapLogger struct {
	sugar *zap.SugaredLogger
	atom  *zap.AtomicLevel
}

// NewDefaultLogger returns a zap-backed logger, silenced until SetLevel is
// called.
func NewDefaultLogger() Logger {
	atom := zap.NewAtomicLevelAt(silencedLevel)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		atom,
	)
	return &zapLogger{sugar: zap.New(core).Sugar(), atom: &atom}
}

// NewZapLogger wraps an existing zap logger, useful when the host application
// already carries one. Pass the AtomicLevel governing that logger's cores so
// SetLevel can steer it; with a nil atom, level control stays with the host
// and SetLevel is a no-op.
func NewZapLogger(l *zap.Logger, atom *zap.AtomicLevel) Logger {
	return &zapLogger{sugar: l.Sugar(), atom: atom}
}

func (l *zapLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *zapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}
func (l *zapLogger) Info(args ...interface{}) { l.sugar.Info(args...) }
func (l *zapLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}
func (l *zapLogger) Warn(args ...interface{}) { l.sugar.Warn(args...) }
func (l *zapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}
func (l *zapLogger) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *zapLogger) SetLevel(level common.LogLevel) {
	if l.atom == nil {
		return
	}
	l.atom.SetLevel(zapLevel(level))
}

func zapLevel(level common.LogLevel) zapcore.Level {
	switch level {
	case common.DebugLevel:
		return zapcore.DebugLevel
	case common.InfoLevel:
		return zapcore.InfoLevel
	case common.WarnLevel:
		return zapcore.WarnLevel
	case common.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return silencedLevel
	}
}
