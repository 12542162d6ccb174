package promptloom

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptloom/promptloom/internal/prompts"
)

func newUseCasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   useCasesCommandUse,
		Short: useCasesCommandShort,
		Args: func(cmd *cobra.Command, args []string) error {
			if argsErr := cobra.NoArgs(cmd, args); argsErr != nil {
				return &usageError{cause: argsErr}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUseCasesCommand(cmd)
		},
	}
}

func runUseCasesCommand(command *cobra.Command) error {
	outputWriter := command.OutOrStdout()
	for _, template := range prompts.Default().Templates() {
		_, writeErr := fmt.Fprintf(
			outputWriter,
			"%s\t%s\n\tsections: %s\n",
			styleUseCaseName.Render(string(template.UseCase)),
			template.Summary,
			strings.Join(template.Sections, ", "),
		)
		if writeErr != nil {
			return fmt.Errorf(useCaseListingErrorFormat, writeErr)
		}
	}
	return nil
}
