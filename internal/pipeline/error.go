package pipeline

import (
	"errors"
	"fmt"

	"github.com/promptloom/promptloom/internal/deepseek"
	"github.com/promptloom/promptloom/internal/input"
)

// Stage identifies where in the transformation sequence a failure occurred.
type Stage string

const (
	StageValidate Stage = "validate"
	StageSend     Stage = "send"
	StageExtract  Stage = "extract"
)

// KindUnknown tags failures that carry no classification of their own.
const KindUnknown = "UNKNOWN"

// Error is the single failure shape surfaced by a pipeline run. Message text
// is safe to display; it never carries the API credential.
type Error struct {
	Stage   Stage  `json:"stage"`
	Kind    string `json:"kind"`
	Message string `json:"message"`

	cause error
}

func (pipelineError *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", pipelineError.Stage, pipelineError.Kind, pipelineError.Message)
}

func (pipelineError *Error) Unwrap() error { return pipelineError.cause }

// stageError maps a component failure into the unified error shape, keeping
// the original error in the chain.
func stageError(stage Stage, cause error) *Error {
	return &Error{Stage: stage, Kind: classifyKind(cause), Message: cause.Error(), cause: cause}
}

func classifyKind(err error) string {
	var validationErr *input.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Kind
	}
	if kind, tagged := deepseek.KindOf(err); tagged {
		return string(kind)
	}
	return KindUnknown
}
