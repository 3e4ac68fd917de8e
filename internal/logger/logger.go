// Package logger builds the zap loggers used across carefinder.
package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// production reports, per known environment, whether JSON output is used.
var production = map[string]bool{
	"prod":    true,
	"staging": true,
	"local":   false,
	"dev":     false,
	"docker":  false,
}

// NewLogger creates a zap logger for the given environment.
// prod and staging use JSON output; local, dev and docker use colored console output.
// levelOverride (if non-empty) overrides the log level: debug, info, warn, error.
func NewLogger(env string, levelOverride ...string) (*zap.Logger, error) {
	prod, ok := production[env]
	if !ok {
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	var cfg zap.Config
	if prod {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if len(levelOverride) > 0 && levelOverride[0] != "" {
		level, err := zapcore.ParseLevel(levelOverride[0])
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelOverride[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.With(zap.String("service", "carefinder"), zap.String("env", env)), nil
}

// Query describes a user query without logging its text. Queries are
// requests for mental-health help and stay out of the logs.
func Query(q string) zap.Field {
	sum := sha256.Sum256([]byte(q))
	return zap.Dict("query",
		zap.Int("chars", utf8.RuneCountInString(q)),
		zap.String("fingerprint", hex.EncodeToString(sum[:6])),
	)
}
