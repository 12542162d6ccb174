// Package input acquires and normalizes raw prompt text before it enters the
// transformation pipeline.
package input

import "strings"

// Source identifies where raw prompt text came from.
type Source string

const (
	SourceArgument Source = "argument"
	SourceFile     Source = "file"
	SourceStdin    Source = "stdin"
)

// RawInput carries unprocessed prompt text and its origin.
type RawInput struct {
	Text   string
	Source Source
}

// ValidationKindEmptyInput marks input that is empty after trimming.
const ValidationKindEmptyInput = "EMPTY_INPUT"

// ValidationError reports input that cannot enter the pipeline.
type ValidationError struct {
	Kind    string
	Message string
}

func (validationError *ValidationError) Error() string { return validationError.Message }

// Normalize trims surrounding whitespace and rejects input that is empty
// afterwards. Interior whitespace and line breaks are preserved untouched.
func Normalize(raw RawInput) (string, error) {
	normalized := strings.TrimSpace(raw.Text)
	if normalized == "" {
		return "", &ValidationError{
			Kind:    ValidationKindEmptyInput,
			Message: "input text is empty after trimming",
		}
	}
	return normalized, nil
}
