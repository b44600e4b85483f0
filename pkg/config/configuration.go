package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/trellisml/trellis/pkg/constants"
	"github.com/trellisml/trellis/pkg/util"
	"gopkg.in/yaml.v2"
)

var (
	TrellisEnvVarPrefix string = constants.TrellisEnvVarPrefix
)

type TrellisConfiguration struct {
	HttpPort        uint          `json:"http_port,omitempty" mapstructure:"http_port,omitempty" yaml:"http_port,omitempty"`
	DevelopmentMode bool          `json:"development_mode,omitempty" mapstructure:"development_mode,omitempty" yaml:"development_mode,omitempty"`
	Platform        *PlatformSpec `json:"platform,omitempty" mapstructure:"platform,omitempty" yaml:"platform,omitempty"`
}

type PlatformSpec struct {
	URL       string `json:"url,omitempty" mapstructure:"url,omitempty" yaml:"url,omitempty"`
	Token     string `json:"token,omitempty" mapstructure:"token,omitempty" yaml:"token,omitempty"`
	Workspace string `json:"workspace,omitempty" mapstructure:"workspace,omitempty" yaml:"workspace,omitempty"`
}

func LoadDefaultConfiguration() *TrellisConfiguration {
	return &TrellisConfiguration{
		HttpPort: 8000,
	}
}

func LoadRuntimeConfiguration(v *viper.Viper, appDir string) (*TrellisConfiguration, error) {
	appTrellisPath := filepath.Join(appDir, constants.DotTrellis)

	v.AddConfigPath(appTrellisPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	var config *TrellisConfiguration
	configPath := ""

	if _, err := os.Stat(filepath.Join(appTrellisPath, "config.yaml")); err == nil {
		configPath = filepath.Join(appTrellisPath, "config.yaml")
	} else if _, err := os.Stat(filepath.Join(appTrellisPath, "config.yml")); err == nil {
		configPath = filepath.Join(appTrellisPath, "config.yml")
	}

	if configPath != "" {
		configBytes, err := util.ReplaceEnvVariablesFromPath(configPath, TrellisEnvVarPrefix)
		if err != nil {
			return nil, err
		}

		err = v.ReadConfig(bytes.NewBuffer(configBytes))
		if err != nil {
			return nil, err
		}
	} else {
		// No config file found, write defaults
		config = LoadDefaultConfiguration()
		configPath := filepath.Join(appTrellisPath, "config.yaml")
		marshalledConfig, err := yaml.Marshal(config)
		if err != nil {
			return nil, err
		}

		err = os.MkdirAll(appTrellisPath, 0766)
		if err != nil {
			return nil, fmt.Errorf("error initializing .trellis/config.yaml: %w", err)
		}

		err = os.WriteFile(configPath, marshalledConfig, 0766)
		if err != nil {
			return nil, fmt.Errorf("error initializing .trellis/config.yaml: %w", err)
		}
	}

	err := v.Unmarshal(&config)
	return config, err
}

func (rtConfig *TrellisConfiguration) ServerBaseUrl() string {
	return fmt.Sprintf("http://localhost:%d", rtConfig.HttpPort)
}

// PlatformBaseUrl returns the managed platform endpoint; empty when the app
// has not been configured against a workspace yet.
func (rtConfig *TrellisConfiguration) PlatformBaseUrl() string {
	if rtConfig.Platform == nil {
		return ""
	}
	return rtConfig.Platform.URL
}

// PlatformWorkspace returns the configured default workspace. Manifests that
// set their own workspace take precedence over it.
func (rtConfig *TrellisConfiguration) PlatformWorkspace() string {
	if rtConfig.Platform == nil {
		return ""
	}
	return rtConfig.Platform.Workspace
}
