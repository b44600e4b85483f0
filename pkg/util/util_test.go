package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveReaderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.zip")

	err := SaveReaderToFile(strings.NewReader("bundle-bytes"), path)
	if err != nil {
		t.Error(err)
		return
	}

	content, err := os.ReadFile(path)
	if assert.NoError(t, err) {
		assert.Equal(t, "bundle-bytes", string(content))
	}
}

func TestReplaceEnvVariablesFromPath(t *testing.T) {
	testEnvVar := "TRELLIS_TEST_TOKEN_TO_REPLACE"
	if os.Getenv(testEnvVar) != "" {
		t.Errorf("%s must not be set during tests", testEnvVar)
	}

	os.Setenv(testEnvVar, "supersecret")
	defer os.Unsetenv(testEnvVar)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "token: TRELLIS_TEST_TOKEN_TO_REPLACE\n"
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Error(err)
		return
	}

	replaced, err := ReplaceEnvVariablesFromPath(path, "TRELLIS_")
	if err != nil {
		t.Error(err)
		return
	}

	assert.Equal(t, "token: supersecret\n", string(replaced))
}

func TestAddElementToString(t *testing.T) {
	t.Run("adds after matching line", func(t *testing.T) {
		content := "steps:\nname: test"
		modified, ok := AddElementToString(content, "# add steps here", "steps:", false)
		assert.True(t, ok)
		assert.Equal(t, "steps:\n# add steps here\nname: test", modified)
	})

	t.Run("does not add twice", func(t *testing.T) {
		content := "steps:\n# add steps here\nname: test"
		_, ok := AddElementToString(content, "# add steps here", "steps:", false)
		assert.False(t, ok)
	})
}
