package promptloom

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/promptloom/promptloom/internal/config"
	"github.com/promptloom/promptloom/internal/deepseek"
	"github.com/promptloom/promptloom/internal/input"
	"github.com/promptloom/promptloom/internal/pipeline"
	"github.com/promptloom/promptloom/internal/prompts"
)

type organizeCommandOptions struct {
	configPath      string
	useCase         prompts.UseCase
	inputFilePath   string
	apiKey          string
	timeout         time.Duration
	outputFilePath  string
	copyToClipboard bool
	jsonOutput      bool
	quiet           bool
	verbose         bool
}

func newOrganizeCommand() *cobra.Command {
	options := &organizeCommandOptions{useCase: prompts.UseCaseGeneral}

	command := &cobra.Command{
		Use:   organizeCommandUse,
		Short: organizeCommandShort,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganizeCommand(cmd, *options, args)
		},
	}

	registerOrganizeFlags(command.Flags(), options)

	return command
}

func registerOrganizeFlags(flags *pflag.FlagSet, options *organizeCommandOptions) {
	flags.StringVar(&options.configPath, configFlagName, "", configFlagUsage)
	flags.VarP(newUseCaseFlagValue(&options.useCase), useCaseFlagName, useCaseFlagShorthand, useCaseFlagUsage)
	flags.StringVarP(&options.inputFilePath, fileFlagName, fileFlagShorthand, "", fileFlagUsage)
	flags.StringVar(&options.apiKey, apiKeyFlagName, "", apiKeyFlagUsage)
	flags.DurationVar(&options.timeout, timeoutFlagName, 0, timeoutFlagUsage)
	flags.StringVarP(&options.outputFilePath, outputFlagName, outputFlagShorthand, "", outputFlagUsage)
	flags.BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagUsage)
	flags.BoolVar(&options.jsonOutput, jsonFlagName, false, jsonFlagUsage)
	flags.BoolVar(&options.quiet, quietFlagName, false, quietFlagUsage)
	flags.BoolVarP(&options.verbose, verboseFlagName, verboseFlagShorthand, false, verboseFlagUsage)
}

func runOrganizeCommand(command *cobra.Command, options organizeCommandOptions, args []string) error {
	rootConfiguration, configurationReference, configurationErr := loadRootConfiguration(options.configPath)
	if configurationErr != nil {
		return configurationErr
	}

	logger, loggerErr := newCommandLogger(rootConfiguration, options.verbose)
	if loggerErr != nil {
		return loggerErr
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("configuration resolved", zap.String("source", configurationReference))

	rawInput, inputErr := resolveRawInput(command, options, args)
	if inputErr != nil {
		return inputErr
	}

	credential, credentialEnvironmentVariable := resolveCredential(options, rootConfiguration)
	client := buildCompletionClient(rootConfiguration, options, credential, logger)
	runner := pipeline.Runner{Catalog: prompts.Default(), Client: client, Logger: logger}

	result, runErr := runner.Run(command.Context(), rawInput, options.useCase)
	if runErr != nil {
		return reportOrganizeFailure(command, options, runErr, credentialEnvironmentVariable)
	}
	return writeOrganizeResult(command, options, result)
}

// resolveRawInput prefers positional arguments, then the input file, then stdin.
func resolveRawInput(command *cobra.Command, options organizeCommandOptions, args []string) (input.RawInput, error) {
	if len(args) > 0 {
		return input.RawInput{Text: strings.Join(args, " "), Source: input.SourceArgument}, nil
	}
	if options.inputFilePath != "" {
		return input.NewOSReader().ReadFile(options.inputFilePath)
	}
	return input.ReadAll(command.Context(), command.InOrStdin())
}

// resolveCredential returns the credential and, when it came from the
// environment, the variable it was read from. The raw value is never logged.
func resolveCredential(options organizeCommandOptions, rootConfiguration config.Root) (string, string) {
	if trimmedKey := strings.TrimSpace(options.apiKey); trimmedKey != "" {
		return trimmedKey, ""
	}
	environmentVariable := strings.TrimSpace(rootConfiguration.API.KeyEnv)
	return strings.TrimSpace(os.Getenv(environmentVariable)), environmentVariable
}

func buildCompletionClient(rootConfiguration config.Root, options organizeCommandOptions, credential string, logger *zap.Logger) *deepseek.Client {
	timeout := rootConfiguration.Timeout()
	if options.timeout > 0 {
		timeout = options.timeout
	}
	return deepseek.NewClient(
		credential,
		deepseek.WithEndpoint(rootConfiguration.API.Endpoint),
		deepseek.WithTimeout(timeout),
		deepseek.WithRetryConfig(deepseek.RetryConfig{
			MaxRetries:  rootConfiguration.Retry.MaxRetries,
			BackoffBase: rootConfiguration.BackoffBase(),
			BackoffMax:  rootConfiguration.BackoffMax(),
		}),
		deepseek.WithLogger(logger),
	)
}

func reportOrganizeFailure(command *cobra.Command, options organizeCommandOptions, runErr error, credentialEnvironmentVariable string) error {
	if options.jsonOutput {
		if writeErr := writeJSONError(command.OutOrStdout(), runErr); writeErr != nil {
			return fmt.Errorf(writeResultErrorFormat, writeErr)
		}
		return runErr
	}

	hint := ""
	var pipelineErr *pipeline.Error
	if errors.As(runErr, &pipelineErr) && pipelineErr.Kind == string(deepseek.KindMissingCredential) {
		hint = credentialHint(credentialEnvironmentVariable)
	}
	if renderErr := renderFailure(command.ErrOrStderr(), runErr, hint); renderErr != nil {
		return fmt.Errorf(writeResultErrorFormat, renderErr)
	}
	return runErr
}

func credentialHint(environmentVariable string) string {
	if environmentVariable == "" {
		return "pass a non-empty --api-key"
	}
	return fmt.Sprintf("set %s or pass --api-key", environmentVariable)
}

func writeOrganizeResult(command *cobra.Command, options organizeCommandOptions, result *pipeline.Result) error {
	if options.outputFilePath != "" {
		if writeErr := os.WriteFile(options.outputFilePath, []byte(result.OrganizedPrompt+"\n"), outputFilePermissions); writeErr != nil {
			return fmt.Errorf(outputFileErrorFormat, options.outputFilePath, writeErr)
		}
	}
	if options.copyToClipboard {
		if clipboardErr := clipboard.WriteAll(result.OrganizedPrompt); clipboardErr != nil {
			_, _ = fmt.Fprintf(command.ErrOrStderr(), clipboardWarningFormat, clipboardErr)
		}
	}

	outputWriter := command.OutOrStdout()
	if options.jsonOutput {
		if writeErr := writeJSONResult(outputWriter, result); writeErr != nil {
			return fmt.Errorf(writeResultErrorFormat, writeErr)
		}
		return nil
	}
	if options.quiet {
		if options.outputFilePath != "" {
			return nil
		}
		if _, writeErr := fmt.Fprintln(outputWriter, result.OrganizedPrompt); writeErr != nil {
			return fmt.Errorf(writeResultErrorFormat, writeErr)
		}
		return nil
	}
	if renderErr := renderResult(outputWriter, result); renderErr != nil {
		return fmt.Errorf(writeResultErrorFormat, renderErr)
	}
	return nil
}
