package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until InitWithLevel is called.
var Log = zap.NewNop()

// InitWithLevel installs a console logger, at debug level when debug is set.
func InitWithLevel(debug bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		// Keep whatever logger was installed before.
		Log.Error("Could not build logger", zap.Error(err))
		return
	}
	Log = l
}

// Set replaces the global logger, returning a function that restores the previous one.
func Set(l *zap.Logger) func() {
	prev := Log
	Log = l
	return func() {
		Log = prev
	}
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
