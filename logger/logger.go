/*
Package logger provides structured logging for the invoicing service.

PURPOSE:
  Thin wrapper around zap.SugaredLogger so the rest of the codebase
  depends on one local type instead of the zap API surface.

USAGE:
  log, err := logger.New()
  if err != nil { ... }
  log.Infow("server starting", "port", 8080)

  In tests, use logger.NewNop() to discard output.
*/
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// New creates a production logger with ISO8601 timestamps.
func New() (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
