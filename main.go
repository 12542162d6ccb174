package main

import (
	"os"

	promptloom "github.com/promptloom/promptloom/cmd/promptloom"
	"go.uber.org/zap"
)

func main() {
	logger := zap.Must(zap.NewProduction())

	executionErr := promptloom.Execute()
	if executionErr != nil {
		logger.Error("command execution failed", zap.Error(executionErr))
		_ = logger.Sync()
		os.Exit(promptloom.ExitCode(executionErr))
	}

	syncErr := logger.Sync()
	if syncErr != nil {
		os.Exit(1)
	}
}
