package config_test

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/testutils"
)

func TestConfig(t *testing.T) {
	testConfigPath := "../../test/assets/config/config.yaml"
	testConfigPathWithEnvVars := "../../test/assets/config/config_with_env_vars.yaml"
	t.Cleanup(testutils.CleanupTestTrellisDirectory)
	t.Run("LoadRuntimeConfiguration() - Config loads correctly", testRuntimeConfigLoads(testConfigPath))
	testutils.CleanupTestTrellisDirectory()
	t.Run("LoadRuntimeConfiguration() - Environment variables in config are replaced", testRuntimeConfigReplacesEnvironmentVariables(testConfigPathWithEnvVars))
	testutils.CleanupTestTrellisDirectory()
	t.Run("LoadRuntimeConfiguration() - Defaults written when no config exists", testRuntimeConfigDefaults())
}

// Tests configuration loads correctly
func testRuntimeConfigLoads(testConfigPath string) func(*testing.T) {
	return func(t *testing.T) {
		testutils.EnsureTestTrellisDirectory(t)

		tempConfigPath := filepath.Join(".trellis", "config.yaml")
		copyFile(testConfigPath, tempConfigPath)

		v := viper.New()
		trellisConfiguration, err := config.LoadRuntimeConfiguration(v, ".")
		if err != nil {
			t.Error(err)
			return
		}

		actual := strconv.Itoa(int(trellisConfiguration.HttpPort))
		assert.Equal(t, "8000", actual)
		assert.Equal(t, "https://platform.example.com", trellisConfiguration.PlatformBaseUrl())
		assert.Equal(t, "mlops-workspace", trellisConfiguration.PlatformWorkspace())
	}
}

// Tests configuration replaces environment variables correctly
func testRuntimeConfigReplacesEnvironmentVariables(testConfigPath string) func(*testing.T) {
	return func(t *testing.T) {
		testutils.EnsureTestTrellisDirectory(t)

		testEnvVar := "TRELLIS_TOKEN_TO_REPLACE"
		if os.Getenv(testEnvVar) != "" {
			t.Errorf("%s must not be set during tests", testEnvVar)
		}

		expected := "replacedvalue"
		os.Setenv(testEnvVar, expected)
		defer os.Unsetenv(testEnvVar)

		tempConfigPath := filepath.Join(".trellis", "config.yaml")
		copyFile(testConfigPath, tempConfigPath)

		v := viper.New()
		trellisConfiguration, err := config.LoadRuntimeConfiguration(v, ".")
		if err != nil {
			t.Error(err)
			return
		}

		assert.Equal(t, expected, trellisConfiguration.Platform.Token)
	}
}

// Tests defaults are written and loaded when no config file exists
func testRuntimeConfigDefaults() func(*testing.T) {
	return func(t *testing.T) {
		testutils.EnsureTestTrellisDirectory(t)

		v := viper.New()
		trellisConfiguration, err := config.LoadRuntimeConfiguration(v, ".")
		if err != nil {
			t.Error(err)
			return
		}

		assert.Equal(t, uint(8000), trellisConfiguration.HttpPort)

		if _, err := os.Stat(filepath.Join(".trellis", "config.yaml")); err != nil {
			t.Errorf("expected default config to be written: %s", err)
		}
	}
}

func copyFile(from string, to string) {
	source, err := os.Open(from)
	if err != nil {
		log.Fatal(err)
	}
	defer source.Close()

	destination, err := os.Create(to)
	if err != nil {
		log.Fatal(err)
	}
	defer destination.Close()

	_, err = io.Copy(destination, source)
	if err != nil {
		log.Fatal(err)
	}
}
