package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// NewLogger creates a configured logrus logger. Debug level uses the text
// formatter; every other level logs JSON.
func NewLogger(level string) *logrus.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if lvl >= logrus.DebugLevel {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// WithRequestID stores the request ID for log correlation
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext returns base annotated with the request ID carried by ctx
func FromContext(ctx context.Context, base logrus.FieldLogger) logrus.FieldLogger {
	if id := RequestID(ctx); id != "" {
		return base.WithField("request_id", id)
	}
	return base
}
