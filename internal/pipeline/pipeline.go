// Package pipeline sequences the prompt transformation: normalize the input,
// resolve the use-case template, call the completion API, extract the result,
// and measure it. A run either yields a complete Result or a single Error;
// there are no partial results.
package pipeline

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptloom/promptloom/internal/analytics"
	"github.com/promptloom/promptloom/internal/deepseek"
	"github.com/promptloom/promptloom/internal/input"
	"github.com/promptloom/promptloom/internal/prompts"
)

// CompletionSender abstracts the API client so runs can be tested against
// fakes and stub servers.
type CompletionSender interface {
	Send(ctx context.Context, request deepseek.Request) (*deepseek.Completion, error)
}

// Result carries everything a successful run produces.
type Result struct {
	OrganizedPrompt string            `json:"organized_prompt"`
	UseCase         prompts.UseCase   `json:"use_case"`
	Metrics         analytics.Metrics `json:"metrics"`
	RequestID       string            `json:"request_id"`
}

// Runner executes transformation runs. It holds no per-run state, so a single
// Runner is safe for concurrent independent invocations.
type Runner struct {
	Catalog *prompts.Catalog
	Client  CompletionSender
	Logger  *zap.Logger
}

// Run transforms raw text into an organized prompt for the given use case.
// The first failing step aborts the run; its error is mapped to an Error with
// the stage and kind that produced it.
func (runner Runner) Run(ctx context.Context, raw input.RawInput, useCase prompts.UseCase) (*Result, error) {
	logger := runner.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.New().String()

	normalizedText, normalizeErr := input.Normalize(raw)
	if normalizeErr != nil {
		return nil, stageError(StageValidate, normalizeErr)
	}

	template := runner.Catalog.Lookup(useCase)
	request := deepseek.NewRequest(template.SystemInstruction, normalizedText)

	logger.Debug("dispatching organize run",
		zap.String("run_id", runID),
		zap.String("use_case", useCase.String()),
		zap.String("source", string(raw.Source)),
		zap.Int("input_characters", utf8.RuneCountInString(normalizedText)),
		zap.String("input_preview", previewForLog(normalizedText)))

	completion, sendErr := runner.Client.Send(ctx, request)
	if sendErr != nil {
		return nil, stageError(StageSend, sendErr)
	}

	organizedPrompt, extractErr := deepseek.Extract(completion)
	if extractErr != nil {
		return nil, stageError(StageExtract, extractErr)
	}

	metrics := analytics.Compute(normalizedText, organizedPrompt)
	logger.Debug("organize run completed",
		zap.String("run_id", runID),
		zap.Int("output_characters", metrics.OutputCharacters),
		zap.Float64("expansion_ratio", metrics.ExpansionRatio),
		zap.Bool("structured", metrics.HasStructureMarkers))

	return &Result{
		OrganizedPrompt: organizedPrompt,
		UseCase:         useCase,
		Metrics:         metrics,
		RequestID:       runID,
	}, nil
}

// inputPreviewLimit caps the input excerpt that appears in debug logs.
const inputPreviewLimit = 80

func previewForLog(text string) string {
	runes := []rune(text)
	if len(runes) <= inputPreviewLimit {
		return text
	}
	return string(runes[:inputPreviewLimit]) + "…"
}
