package logging

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Lookup reports the logger stored in context, if any.
func Lookup(ctx context.Context) (zerolog.Logger, bool) {
	if ctx == nil {
		return zerolog.Logger{}, false
	}
	logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger)
	return logger, ok
}

type loggerKey struct{}

// New builds a structured logger with sane defaults. Production output is
// plain JSON; other environments get the colored console writer.
func New(appName, env string) zerolog.Logger {
	var logger zerolog.Logger
	if env == "production" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		})
	}
	return logger.With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

// IntoContext injects a logger into context for downstream use.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}
