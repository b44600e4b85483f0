package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/platform"
)

// resolveManifestPath accepts either a manifest path or a pipeline name. A
// name resolves against the app's .trellis/pipelines directory.
func resolveManifestPath(nameOrPath string) (string, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		return nameOrPath, nil
	}

	name := strings.ToLower(nameOrPath)
	for _, ext := range []string{".yaml", ".yml"} {
		manifestPath := filepath.Join(config.PipelinesManifestsPath(), name+ext)
		if _, err := os.Stat(manifestPath); err == nil {
			return manifestPath, nil
		}
	}

	return "", fmt.Errorf("the pipeline '%s' does not exist", nameOrPath)
}

func GetPipelineAndConfiguration(nameOrPath string) (*pipeline.Pipeline, *config.TrellisConfiguration, error) {
	manifestPath, err := resolveManifestPath(nameOrPath)
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.LoadPipelineFromManifest(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	v := viper.New()
	runtimeConfig, err := config.LoadRuntimeConfiguration(v, config.AppPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load runtime configuration: %w", err)
	}

	return p, runtimeConfig, nil
}

func getPlatformClient(runtimeConfig *config.TrellisConfiguration) (platform.Client, error) {
	if runtimeConfig.PlatformBaseUrl() == "" {
		return nil, errors.New("no platform configured, set platform.url in .trellis/config.yaml")
	}

	return platform.NewPlatformClient(runtimeConfig.PlatformBaseUrl(), runtimeConfig.Platform.Token)
}
