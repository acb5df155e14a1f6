// Package util holds the process-global logger plus small input
// helpers shared across the service.
package util

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Init builds the global logger from config. It is one-shot: later
// calls return the logger built by the first. Production gets the JSON
// preset with ISO8601 timestamps and no stacktraces; everything else
// gets the colored development preset. The format setting overrides the
// preset encoding, and an unknown level falls back to info.
func Init(environment, level, format string) *zap.Logger {
	once.Do(func() {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			parsed = zapcore.InfoLevel
		}

		var cfg zap.Config
		if environment == "production" {
			cfg = zap.NewProductionConfig()
			cfg.EncoderConfig.TimeKey = "timestamp"
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			cfg.DisableStacktrace = true
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		cfg.Level = zap.NewAtomicLevelAt(parsed)
		switch format {
		case "json":
			cfg.Encoding = "json"
		case "console":
			cfg.Encoding = "console"
		}
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}

		// Caller skip accounts for the package-level wrappers below.
		logger, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}

		globalLogger = logger
		zap.ReplaceGlobals(logger)
	})

	return globalLogger
}

// Get returns the global logger, initializing a production logger if
// Init has not run yet.
func Get() *zap.Logger {
	if globalLogger == nil {
		return Init("production", "info", "json")
	}
	return globalLogger
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

func Debug(msg string, fields ...zap.Field) { Get().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Get().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Get().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Get().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { Get().Fatal(msg, fields...) }

// Field helpers so call sites do not need a direct zap import.

func String(key, value string) zap.Field { return zap.String(key, value) }

func Int(key string, value int) zap.Field { return zap.Int(key, value) }

func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

func Duration(key string, value time.Duration) zap.Field { return zap.Duration(key, value) }

// ErrorField wraps an error, named to avoid clashing with Error above.
func ErrorField(err error) zap.Field { return zap.Error(err) }
