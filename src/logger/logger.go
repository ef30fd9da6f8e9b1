// Package logger is the process-wide leveled logger used by the plot tools.
// The call sites stay printf-style; records are emitted through zap.
package logger

import (
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var (
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base        atomic.Pointer[zap.SugaredLogger]
)

func init() {
	base.Store(newSugared(zapcore.Lock(os.Stderr)))
}

func newSugared(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, atomicLevel)
	return zap.New(core).Sugar()
}

// SetOutput redirects log records to ws. Mostly useful in tests.
func SetOutput(ws zapcore.WriteSyncer) {
	base.Store(newSugared(ws))
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomicLevel.SetLevel(zapLevels[l])
}

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel {
	switch atomicLevel.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

// Sync flushes buffered records.
func Sync() { _ = base.Load().Sync() }

func logf(l LogLevel, format string, args ...interface{}) {
	s := base.Load()
	// Without args the input is a plain message; formatting it would turn literal %
	// characters into %!x(MISSING).
	if len(args) == 0 {
		switch l {
		case LevelDebug:
			s.Debug(format)
		case LevelWarn:
			s.Warn(format)
		case LevelError:
			s.Error(format)
		default:
			s.Info(format)
		}
		return
	}
	switch l {
	case LevelDebug:
		s.Debugf(format, args...)
	case LevelWarn:
		s.Warnf(format, args...)
	case LevelError:
		s.Errorf(format, args...)
	default:
		s.Infof(format, args...)
	}
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs at debug level how long a phase took.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
