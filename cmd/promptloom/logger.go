package promptloom

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/promptloom/promptloom/internal/config"
)

// newCommandLogger builds a production logger at the configured level.
// The verbose flag lowers the level to debug regardless of configuration.
func newCommandLogger(rootConfiguration config.Root, verbose bool) (*zap.Logger, error) {
	level, levelErr := rootConfiguration.LogLevel()
	if levelErr != nil {
		return nil, levelErr
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.Level = zap.NewAtomicLevelAt(level)
	return loggerConfiguration.Build()
}
