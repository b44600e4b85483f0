package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadCondaFile(t *testing.T) {
	env, err := LoadCondaFile("../../test/assets/environments/train_env.yml")
	if err != nil {
		t.Error(err)
		return
	}

	assert.Equal(t, "attrition-env", env.Name)
	assert.Equal(t, []string{"defaults", "conda-forge"}, env.Channels)
	assert.Equal(t, []string{"python=3.8", "scikit-learn", "pandas", "pip"}, env.Dependencies)
	assert.Equal(t, []string{"azure-identity", "joblib"}, env.Pip)

	assert.Equal(t, "3.8", env.PythonVersion())
	assert.Equal(t, []string{"scikit-learn", "pandas"}, env.CondaPackages())
}

func TestLoadCondaFileNotFound(t *testing.T) {
	_, err := LoadCondaFile("nonexistent.yml")
	assert.Error(t, err)
}
