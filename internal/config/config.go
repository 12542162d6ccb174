// Package config defines the runtime configuration schema and the layered
// loader that resolves it from embedded defaults, configuration files, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap/zapcore"
)

const (
	endpointInvalidErrorFormat     = "config api.endpoint %q is not an absolute http(s) URL"
	keyEnvMissingErrorMessage      = "config api.key_env is empty"
	timeoutRangeErrorFormat        = "config api.timeout_seconds must be at least 1, got %d"
	retryRangeErrorFormat          = "config retry.max_retries must be between 0 and %d, got %d"
	backoffBaseRangeErrorFormat    = "config retry.backoff_base_ms must be at least 1, got %d"
	backoffOrderingErrorFormat     = "config retry.backoff_max_ms %d is smaller than retry.backoff_base_ms %d"
	loggingLevelInvalidErrorFormat = "config logging.level %q is not a valid level"

	maximumRetryAttempts = 2
)

// Root is the full configuration schema.
type Root struct {
	API     API     `mapstructure:"api"`
	Retry   Retry   `mapstructure:"retry"`
	Logging Logging `mapstructure:"logging"`
}

// API configures the completion endpoint, the credential lookup, and the
// per-request timeout.
type API struct {
	Endpoint       string `mapstructure:"endpoint"`
	KeyEnv         string `mapstructure:"key_env"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Retry bounds how transient completion failures are retried.
type Retry struct {
	MaxRetries              int `mapstructure:"max_retries"`
	BackoffBaseMilliseconds int `mapstructure:"backoff_base_ms"`
	BackoffMaxMilliseconds  int `mapstructure:"backoff_max_ms"`
}

// Logging configures the diagnostic logger.
type Logging struct {
	Level string `mapstructure:"level"`
}

// Validate reports the first configuration value outside its accepted range.
func (root Root) Validate() error {
	endpointURL, parseError := url.Parse(root.API.Endpoint)
	if parseError != nil || (endpointURL.Scheme != "http" && endpointURL.Scheme != "https") || endpointURL.Host == "" {
		return fmt.Errorf(endpointInvalidErrorFormat, root.API.Endpoint)
	}
	if root.API.KeyEnv == "" {
		return errors.New(keyEnvMissingErrorMessage)
	}
	if root.API.TimeoutSeconds < 1 {
		return fmt.Errorf(timeoutRangeErrorFormat, root.API.TimeoutSeconds)
	}
	if root.Retry.MaxRetries < 0 || root.Retry.MaxRetries > maximumRetryAttempts {
		return fmt.Errorf(retryRangeErrorFormat, maximumRetryAttempts, root.Retry.MaxRetries)
	}
	if root.Retry.BackoffBaseMilliseconds < 1 {
		return fmt.Errorf(backoffBaseRangeErrorFormat, root.Retry.BackoffBaseMilliseconds)
	}
	if root.Retry.BackoffMaxMilliseconds < root.Retry.BackoffBaseMilliseconds {
		return fmt.Errorf(backoffOrderingErrorFormat, root.Retry.BackoffMaxMilliseconds, root.Retry.BackoffBaseMilliseconds)
	}
	if _, levelError := root.LogLevel(); levelError != nil {
		return levelError
	}
	return nil
}

// Timeout converts api.timeout_seconds into a duration.
func (root Root) Timeout() time.Duration {
	return time.Duration(root.API.TimeoutSeconds) * time.Second
}

// BackoffBase converts retry.backoff_base_ms into a duration.
func (root Root) BackoffBase() time.Duration {
	return time.Duration(root.Retry.BackoffBaseMilliseconds) * time.Millisecond
}

// BackoffMax converts retry.backoff_max_ms into a duration.
func (root Root) BackoffMax() time.Duration {
	return time.Duration(root.Retry.BackoffMaxMilliseconds) * time.Millisecond
}

// LogLevel parses logging.level into a zap level.
func (root Root) LogLevel() (zapcore.Level, error) {
	level, parseError := zapcore.ParseLevel(root.Logging.Level)
	if parseError != nil {
		return zapcore.InfoLevel, fmt.Errorf(loggingLevelInvalidErrorFormat, root.Logging.Level)
	}
	return level, nil
}
