// Package promptloom assembles the command line surface.
package promptloom

import (
	"errors"

	"github.com/spf13/cobra"
)

type usageError struct {
	cause error
}

func (usageErr *usageError) Error() string { return usageErr.cause.Error() }

func (usageErr *usageError) Unwrap() error { return usageErr.cause }

// NewRootCommand assembles the root command with its subcommands.
func NewRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:           rootCommandUse,
		Short:         rootCommandShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	command.SetFlagErrorFunc(func(cmd *cobra.Command, flagErr error) error {
		return &usageError{cause: flagErr}
	})
	command.AddCommand(newOrganizeCommand())
	command.AddCommand(newUseCasesCommand())
	return command
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// ExitCode maps an execution error onto the process exit status: 0 for
// success, 2 for usage mistakes, 1 for everything else.
func ExitCode(executionErr error) int {
	if executionErr == nil {
		return 0
	}
	var usageErr *usageError
	if errors.As(executionErr, &usageErr) {
		return 2
	}
	return 1
}
