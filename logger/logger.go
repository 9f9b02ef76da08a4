package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// level lets config raise or lower verbosity after boot.
	level = zap.NewAtomicLevel()

	Log *zap.Logger = newLogger(os.Getenv("ENV"), level)
)

// newLogger builds a production logger when env is "prod" and a development
// logger otherwise.
func newLogger(env string, lvl zap.AtomicLevel) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	initial := zapcore.DebugLevel
	if env == "prod" {
		cfg = zap.NewProductionConfig()
		initial = zapcore.InfoLevel
	}
	lvl.SetLevel(initial)
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		panic("Unable to get zapper: " + err.Error())
	}
	return log
}

func Get() *zap.Logger {
	return Log
}

// SetLevel accepts zap level names (debug, info, warn, error). Unknown names are ignored.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		Log.Warn("Unknown log level, keeping current", zap.String("level", name))
		return
	}
	level.SetLevel(l)
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Fatal is a variable so tests can swap in a recorder instead of exiting.
var Fatal = func(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
