package config_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptloom/promptloom/internal/config"
)

const (
	testWorkingDirectory        = "/workspace"
	testHomeDirectory           = "/home/tester"
	workingConfigurationName    = "promptloom.yaml"
	homeConfigurationDirectory  = ".promptloom"
	homeConfigurationName       = "config.yaml"
	explicitConfigurationName   = "explicit.yaml"
	directoryPermissions        = 0o755
	filePermissions             = 0o644
	workingDirectoryTimeoutYAML = "api:\n  timeout_seconds: 5\n"
	homeDirectoryTimeoutYAML    = "api:\n  timeout_seconds: 9\n"
	explicitTimeoutYAML         = "api:\n  timeout_seconds: 12\n"
)

type loaderScenario struct {
	name              string
	setup             func(t *testing.T, fileSystem afero.Fs) (string, string)
	expectedTimeout   int
	expectedKeyEnv    string
	expectedReference string
}

func writeConfiguration(t *testing.T, fileSystem afero.Fs, path string, content string) {
	t.Helper()
	require.NoError(t, fileSystem.MkdirAll(filepath.Dir(path), directoryPermissions))
	require.NoError(t, afero.WriteFile(fileSystem, path, []byte(content), filePermissions))
}

func workingConfigurationPath() string {
	return filepath.Join(testWorkingDirectory, workingConfigurationName)
}

func homeConfigurationPath() string {
	return filepath.Join(testHomeDirectory, homeConfigurationDirectory, homeConfigurationName)
}

func TestLoaderLayersSources(t *testing.T) {
	scenarios := []loaderScenario{
		{
			name: "embedded defaults when no files exist",
			setup: func(t *testing.T, fileSystem afero.Fs) (string, string) {
				t.Helper()
				return "", config.EmbeddedConfigurationReference
			},
			expectedTimeout: 30,
			expectedKeyEnv:  "DEEPSEEK_API_KEY",
		},
		{
			name: "working directory file overrides embedded defaults",
			setup: func(t *testing.T, fileSystem afero.Fs) (string, string) {
				t.Helper()
				writeConfiguration(t, fileSystem, workingConfigurationPath(), workingDirectoryTimeoutYAML)
				return "", workingConfigurationPath()
			},
			expectedTimeout: 5,
			expectedKeyEnv:  "DEEPSEEK_API_KEY",
		},
		{
			name: "home directory file used when working directory has none",
			setup: func(t *testing.T, fileSystem afero.Fs) (string, string) {
				t.Helper()
				writeConfiguration(t, fileSystem, homeConfigurationPath(), homeDirectoryTimeoutYAML)
				return "", homeConfigurationPath()
			},
			expectedTimeout: 9,
			expectedKeyEnv:  "DEEPSEEK_API_KEY",
		},
		{
			name: "working directory file wins over home directory file",
			setup: func(t *testing.T, fileSystem afero.Fs) (string, string) {
				t.Helper()
				writeConfiguration(t, fileSystem, workingConfigurationPath(), workingDirectoryTimeoutYAML)
				writeConfiguration(t, fileSystem, homeConfigurationPath(), homeDirectoryTimeoutYAML)
				return "", workingConfigurationPath()
			},
			expectedTimeout: 5,
			expectedKeyEnv:  "DEEPSEEK_API_KEY",
		},
		{
			name: "explicit path wins over search path files",
			setup: func(t *testing.T, fileSystem afero.Fs) (string, string) {
				t.Helper()
				explicitPath := filepath.Join(testWorkingDirectory, explicitConfigurationName)
				writeConfiguration(t, fileSystem, explicitPath, explicitTimeoutYAML)
				writeConfiguration(t, fileSystem, workingConfigurationPath(), workingDirectoryTimeoutYAML)
				return explicitPath, explicitPath
			},
			expectedTimeout: 12,
			expectedKeyEnv:  "DEEPSEEK_API_KEY",
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			fileSystem := afero.NewMemMapFs()
			loader := config.NewLoader(fileSystem, testWorkingDirectory, testHomeDirectory)
			explicitPath, expectedReference := scenario.setup(t, fileSystem)
			if scenario.expectedReference != "" {
				expectedReference = scenario.expectedReference
			}

			root, reference, loadErr := loader.Load(explicitPath)
			require.NoError(t, loadErr)
			assert.Equal(t, expectedReference, reference)
			assert.Equal(t, scenario.expectedTimeout, root.API.TimeoutSeconds)
			assert.Equal(t, scenario.expectedKeyEnv, root.API.KeyEnv)
		})
	}
}

func TestLoaderEmbeddedDefaults(t *testing.T) {
	loader := config.NewLoader(afero.NewMemMapFs(), testWorkingDirectory, testHomeDirectory)

	root, reference, loadErr := loader.Load("")
	require.NoError(t, loadErr)
	assert.Equal(t, config.EmbeddedConfigurationReference, reference)
	assert.Equal(t, "https://api.deepseek.com", root.API.Endpoint)
	assert.Equal(t, "DEEPSEEK_API_KEY", root.API.KeyEnv)
	assert.Equal(t, 30, root.API.TimeoutSeconds)
	assert.Equal(t, 1, root.Retry.MaxRetries)
	assert.Equal(t, 500, root.Retry.BackoffBaseMilliseconds)
	assert.Equal(t, 5000, root.Retry.BackoffMaxMilliseconds)
	assert.Equal(t, "warn", root.Logging.Level)
}

func TestLoaderMissingExplicitPathFails(t *testing.T) {
	loader := config.NewLoader(afero.NewMemMapFs(), testWorkingDirectory, testHomeDirectory)

	_, _, loadErr := loader.Load(filepath.Join(testWorkingDirectory, "missing.yaml"))
	require.Error(t, loadErr)
	assert.Contains(t, loadErr.Error(), "missing.yaml")
}

func TestLoaderEnvironmentOverridesFile(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeConfiguration(t, fileSystem, workingConfigurationPath(), workingDirectoryTimeoutYAML)
	loader := config.NewLoader(fileSystem, testWorkingDirectory, testHomeDirectory)

	t.Setenv("PROMPTLOOM_API_TIMEOUT_SECONDS", "7")
	t.Setenv("PROMPTLOOM_RETRY_MAX_RETRIES", "2")
	t.Setenv("PROMPTLOOM_LOGGING_LEVEL", "debug")

	root, _, loadErr := loader.Load("")
	require.NoError(t, loadErr)
	assert.Equal(t, 7, root.API.TimeoutSeconds)
	assert.Equal(t, 2, root.Retry.MaxRetries)
	assert.Equal(t, "debug", root.Logging.Level)
}

func TestLoaderRejectsInvalidMergedValues(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeConfiguration(t, fileSystem, workingConfigurationPath(), "retry:\n  max_retries: 9\n")
	loader := config.NewLoader(fileSystem, testWorkingDirectory, testHomeDirectory)

	_, _, loadErr := loader.Load("")
	require.Error(t, loadErr)
	assert.Contains(t, loadErr.Error(), "retry.max_retries")
}

func TestLoaderRejectsMalformedFile(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeConfiguration(t, fileSystem, workingConfigurationPath(), "api: [broken\n")
	loader := config.NewLoader(fileSystem, testWorkingDirectory, testHomeDirectory)

	_, _, loadErr := loader.Load("")
	require.Error(t, loadErr)
}
