package utils

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogger returns a development logger at the given level. Unknown
// levels fall back to INFO.
func SetupLogger(level string) *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(parsed)
	logger := zap.Must(config.Build())
	sugar := logger.Sugar()
	if err != nil && level != "" {
		sugar.Warnw("Unknown log level, using INFO", "level", level)
	}

	return sugar
}
