package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	embeddedConfigurationReference = "embedded default configuration"
	// EmbeddedConfigurationReference identifies the built-in configuration source.
	EmbeddedConfigurationReference = embeddedConfigurationReference

	configurationEnvironmentPrefix              = "PROMPTLOOM"
	configurationFileType                       = "yaml"
	workingDirectoryConfigurationFileName       = "promptloom.yaml"
	homeDirectoryConfigurationRelativeDirectory = ".promptloom"
	homeDirectoryConfigurationFileName          = "config.yaml"
	homeEnvironmentVariableName                 = "HOME"

	embeddedConfigurationReadErrorFormat = "read embedded configuration: %w"
	explicitConfigurationErrorFormat     = "configuration file %s: %w"
	configurationMergeErrorFormat        = "read configuration %s: %w"
	configurationUnmarshalErrorFormat    = "decode configuration %s: %w"
	workingDirectoryErrorFormat          = "determine working directory: %w"
)

var (
	//go:embed default_config.yaml
	embeddedConfigurationBytes []byte
)

// Loader layers configuration sources: embedded defaults first, then the
// first configuration file found, then PROMPTLOOM_* environment variables.
type Loader struct {
	fileSystem       afero.Fs
	workingDirectory string
	homeDirectory    string
}

// NewLoader constructs a loader over the provided file system and directories.
func NewLoader(fileSystem afero.Fs, workingDirectory string, homeDirectory string) Loader {
	return Loader{fileSystem: fileSystem, workingDirectory: workingDirectory, homeDirectory: homeDirectory}
}

// NewDefaultLoader builds a loader over the operating system file system
// using the process working directory and HOME.
func NewDefaultLoader() (Loader, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return Loader{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	return NewLoader(afero.NewOsFs(), workingDirectory, os.Getenv(homeEnvironmentVariableName)), nil
}

// Load resolves and validates the configuration. An explicit path must exist;
// the search path candidates are optional. The returned reference names the
// file the configuration came from, or the embedded source.
func (loader Loader) Load(explicitPath string) (Root, string, error) {
	settings := viper.New()
	settings.SetFs(loader.fileSystem)
	settings.SetConfigType(configurationFileType)
	if readError := settings.ReadConfig(bytes.NewReader(embeddedConfigurationBytes)); readError != nil {
		return Root{}, "", fmt.Errorf(embeddedConfigurationReadErrorFormat, readError)
	}

	reference := embeddedConfigurationReference
	configurationPath, resolveError := loader.resolvePath(explicitPath)
	if resolveError != nil {
		return Root{}, "", resolveError
	}
	if configurationPath != "" {
		settings.SetConfigFile(configurationPath)
		if mergeError := settings.MergeInConfig(); mergeError != nil {
			return Root{}, "", fmt.Errorf(configurationMergeErrorFormat, configurationPath, mergeError)
		}
		reference = configurationPath
	}

	settings.SetEnvPrefix(configurationEnvironmentPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	settings.AutomaticEnv()

	var root Root
	if unmarshalError := settings.Unmarshal(&root); unmarshalError != nil {
		return Root{}, "", fmt.Errorf(configurationUnmarshalErrorFormat, reference, unmarshalError)
	}
	if validationError := root.Validate(); validationError != nil {
		return Root{}, "", validationError
	}
	return root, reference, nil
}

func (loader Loader) resolvePath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, statError := loader.fileSystem.Stat(explicitPath); statError != nil {
			return "", fmt.Errorf(explicitConfigurationErrorFormat, explicitPath, statError)
		}
		return explicitPath, nil
	}
	for _, candidatePath := range loader.candidatePaths() {
		if candidatePath == "" {
			continue
		}
		if _, statError := loader.fileSystem.Stat(candidatePath); statError == nil {
			return candidatePath, nil
		}
	}
	return "", nil
}

func (loader Loader) candidatePaths() []string {
	var workingDirectoryPath string
	if loader.workingDirectory != "" {
		workingDirectoryPath = filepath.Join(loader.workingDirectory, workingDirectoryConfigurationFileName)
	}
	var homeDirectoryPath string
	if loader.homeDirectory != "" {
		homeDirectoryPath = filepath.Join(loader.homeDirectory, homeDirectoryConfigurationRelativeDirectory, homeDirectoryConfigurationFileName)
	}
	return []string{workingDirectoryPath, homeDirectoryPath}
}
