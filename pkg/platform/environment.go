package platform

import (
	"path/filepath"

	"github.com/trellisml/trellis/pkg/environment"
	"github.com/trellisml/trellis/pkg/spec"
)

// BuildEnvironmentDefinition merges the manifest's environment block with its
// conda file, when one is referenced. The conda file path is resolved
// relative to the manifest's directory.
func BuildEnvironmentDefinition(environmentSpec *spec.EnvironmentSpec, manifestPath string) (*EnvironmentDefinition, error) {
	definition := &EnvironmentDefinition{
		Name:          environmentSpec.Name,
		PythonVersion: environmentSpec.PythonVersion,
		CondaPackages: environmentSpec.CondaPackages,
		PipPackages:   environmentSpec.PipPackages,
	}

	if environmentSpec.CondaFile == "" {
		return definition, nil
	}

	condaPath := environmentSpec.CondaFile
	if !filepath.IsAbs(condaPath) && manifestPath != "" {
		condaPath = filepath.Join(filepath.Dir(manifestPath), condaPath)
	}

	condaEnvironment, err := environment.LoadCondaFile(condaPath)
	if err != nil {
		return nil, err
	}

	if definition.Name == "" {
		definition.Name = condaEnvironment.Name
	}
	if definition.PythonVersion == "" {
		definition.PythonVersion = condaEnvironment.PythonVersion()
	}
	definition.Channels = condaEnvironment.Channels
	definition.CondaPackages = append(definition.CondaPackages, condaEnvironment.CondaPackages()...)
	definition.PipPackages = append(definition.PipPackages, condaEnvironment.Pip...)

	return definition, nil
}

