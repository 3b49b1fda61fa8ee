// Package logging builds the zap loggers used across the scanner and
// simulation packages.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production sugared logger writing to stderr.
func New() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// Nop returns a logger that discards everything. Used in tests and anywhere
// a caller does not care about diagnostics.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
