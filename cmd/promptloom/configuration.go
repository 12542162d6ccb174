package promptloom

import (
	"fmt"

	"github.com/promptloom/promptloom/internal/config"
)

func loadRootConfiguration(configurationPath string) (config.Root, string, error) {
	configurationLoader, loaderErr := config.NewDefaultLoader()
	if loaderErr != nil {
		return config.Root{}, "", fmt.Errorf(configurationLoaderErrorFormat, loaderErr)
	}
	rootConfiguration, configurationReference, loadErr := configurationLoader.Load(configurationPath)
	if loadErr != nil {
		return config.Root{}, "", fmt.Errorf(configurationLoadErrorFormat, loadErr)
	}
	return rootConfiguration, configurationReference, nil
}
