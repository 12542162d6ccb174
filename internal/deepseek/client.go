package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint = "https://api.deepseek.com"
	DefaultTimeout  = 30 * time.Second

	completionsPath = "/chat/completions"
	// maxResponseSize caps the response body read to keep a misbehaving
	// endpoint from exhausting memory.
	maxResponseSize = 10 * 1024 * 1024
	maxBodyPreview  = 200
)

// RetryConfig bounds re-attempts for transient failures. MaxRetries counts
// attempts after the first one.
type RetryConfig struct {
	MaxRetries  int
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  1,
		BackoffBase: 500 * time.Millisecond,
		BackoffMax:  5 * time.Second,
	}
}

// Client talks to the DeepSeek chat-completions API. A zero retry config
// disables retries entirely; the default allows one.
type Client struct {
	endpoint    string
	credential  string
	httpClient  *http.Client
	retryConfig RetryConfig
	logger      *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint points the client at a different chat-completions base URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(client *Client) {
		client.endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// WithTimeout bounds each individual request attempt.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient.Timeout = timeout
		}
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(retryConfig RetryConfig) ClientOption {
	return func(client *Client) {
		client.retryConfig = retryConfig
	}
}

// WithLogger sets the logger. The credential is never logged.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient builds a client around the given credential. The credential is
// validated on Send, not here, so construction never fails.
func NewClient(credential string, opts ...ClientOption) *Client {
	client := &Client{
		endpoint:    DefaultEndpoint,
		credential:  strings.TrimSpace(credential),
		retryConfig: DefaultRetryConfig(),
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Send posts the completion request, retrying transient failures within the
// configured bound. A missing credential fails before any network activity.
func (client *Client) Send(ctx context.Context, request Request) (*Completion, error) {
	if client.credential == "" {
		return nil, NewAPIError(KindMissingCredential, errors.New("API credential is empty"))
	}

	requestID := uuid.New().String()
	maxAttempts := 1 + max(0, client.retryConfig.MaxRetries)

	client.logger.Debug("sending completion request",
		zap.String("request_id", requestID),
		zap.String("model", request.Model),
		zap.Int("messages", len(request.Messages)))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		completion, sendErr := client.doRequest(ctx, request)
		if sendErr == nil {
			client.logger.Debug("completion succeeded",
				zap.String("request_id", requestID),
				zap.Int("attempt", attempt))
			return completion, nil
		}
		lastErr = sendErr

		kind, _ := KindOf(sendErr)
		if !retryable(kind) {
			return nil, sendErr
		}

		if attempt < maxAttempts {
			backoff := client.backoff(attempt)
			client.logger.Debug("completion attempt failed, retrying",
				zap.String("request_id", requestID),
				zap.Int("attempt", attempt),
				zap.String("kind", string(kind)),
				zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return nil, classifyContextError(ctx.Err())
			case <-time.After(backoff):
			}
		}
	}
	return nil, lastErr
}

func (client *Client) doRequest(ctx context.Context, request Request) (*Completion, error) {
	requestBytes, marshalErr := json.Marshal(request)
	if marshalErr != nil {
		return nil, NewAPIError(KindProtocol, fmt.Errorf("encode completion request: %w", marshalErr))
	}

	httpRequest, buildErr := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint+completionsPath, bytes.NewReader(requestBytes))
	if buildErr != nil {
		return nil, NewAPIError(KindProtocol, fmt.Errorf("build completion request: %w", buildErr))
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+client.credential)

	httpResponse, httpErr := client.httpClient.Do(httpRequest)
	if httpErr != nil {
		if contextErr := classifyContextError(ctx.Err()); contextErr != nil {
			return nil, contextErr
		}
		if errors.Is(httpErr, context.Canceled) {
			return nil, NewAPIError(KindCancelled, httpErr)
		}
		return nil, NewAPIError(KindNetwork, fmt.Errorf("completion request failed: %w", httpErr))
	}
	defer func(closer io.ReadCloser) { _ = closer.Close() }(httpResponse.Body)

	bodyBytes, readErr := io.ReadAll(io.LimitReader(httpResponse.Body, maxResponseSize))
	if readErr != nil {
		return nil, NewAPIError(KindNetwork, fmt.Errorf("read completion response: %w", readErr))
	}

	if httpResponse.StatusCode != http.StatusOK {
		return nil, classifyStatusError(httpResponse.StatusCode, bodyBytes)
	}

	var completion Completion
	if decodeErr := json.Unmarshal(bodyBytes, &completion); decodeErr != nil {
		return nil, NewAPIError(KindProtocol, fmt.Errorf("decode completion response: %w (body=%s)", decodeErr, truncateForLog(string(bodyBytes), maxBodyPreview)))
	}
	return &completion, nil
}

// backoff computes exponential backoff with jitter, capped at BackoffMax.
func (client *Client) backoff(attempt int) time.Duration {
	multiplier := 1.0
	for i := 1; i < attempt; i++ {
		multiplier *= 2
	}
	backoff := time.Duration(float64(client.retryConfig.BackoffBase) * multiplier)
	if backoff > client.retryConfig.BackoffMax {
		backoff = client.retryConfig.BackoffMax
	}
	jitter := float64(backoff) * 0.25 * (rand.Float64()*2 - 1)
	return backoff + time.Duration(jitter)
}

func classifyContextError(contextErr error) error {
	switch {
	case contextErr == nil:
		return nil
	case errors.Is(contextErr, context.Canceled):
		return NewAPIError(KindCancelled, errors.New("completion request cancelled"))
	case errors.Is(contextErr, context.DeadlineExceeded):
		return NewAPIError(KindNetwork, errors.New("completion request deadline exceeded"))
	default:
		return NewAPIError(KindNetwork, contextErr)
	}
}

func classifyStatusError(statusCode int, body []byte) error {
	statusErr := fmt.Errorf("completion API status %d: %s", statusCode, truncateForLog(string(body), maxBodyPreview))
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return NewAPIError(KindAuth, statusErr)
	case statusCode == http.StatusTooManyRequests:
		return NewAPIError(KindRateLimit, statusErr)
	case statusCode >= 500:
		return NewAPIError(KindServer, statusErr)
	default:
		return NewAPIError(KindProtocol, statusErr)
	}
}

func truncateForLog(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
