package deepseek

import (
	"errors"
)

// Kind buckets a completion failure for retry decisions and reporting.
type Kind string

const (
	KindMissingCredential Kind = "MISSING_CREDENTIAL"
	KindNetwork           Kind = "NETWORK"
	KindAuth              Kind = "AUTH"
	KindRateLimit         Kind = "RATE_LIMIT"
	KindServer            Kind = "SERVER"
	KindProtocol          Kind = "PROTOCOL"
	KindCancelled         Kind = "CANCELLED"

	KindEmptyCompletion Kind = "EMPTY_COMPLETION"
	KindMalformed       Kind = "MALFORMED"
)

// APIError describes a failed completion call. Error text never carries the
// credential, so it is safe to surface to users and logs.
type APIError struct {
	Kind Kind
	err  error
}

func (apiError *APIError) Error() string { return apiError.err.Error() }

func (apiError *APIError) Unwrap() error { return apiError.err }

// NewAPIError tags an error with a failure kind.
func NewAPIError(kind Kind, err error) error {
	return &APIError{Kind: kind, err: err}
}

// ExtractionError reports a completion that could not yield usable text.
type ExtractionError struct {
	Kind    Kind
	Message string
}

func (extractionError *ExtractionError) Error() string { return extractionError.Message }

// KindOf extracts the failure kind from an error chain, if any.
func KindOf(err error) (Kind, bool) {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.Kind, true
	}
	var extractionError *ExtractionError
	if errors.As(err, &extractionError) {
		return extractionError.Kind, true
	}
	return "", false
}

// retryable reports whether a failure class may succeed on a fresh attempt.
// Only transport faults and server-side errors qualify; auth, rate-limit,
// protocol, and cancellation failures never do.
func retryable(kind Kind) bool {
	return kind == KindNetwork || kind == KindServer
}
