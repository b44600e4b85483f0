package environment

import (
	"fmt"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"
)

// CondaEnvironment is a parsed conda-style dependency specification file.
type CondaEnvironment struct {
	Name     string
	Channels []string
	// Dependencies holds the conda packages; pip packages declared under a
	// nested "pip:" entry land in Pip.
	Dependencies []string
	Pip          []string
}

type condaFile struct {
	Name         string        `yaml:"name,omitempty"`
	Channels     []string      `yaml:"channels,omitempty"`
	Dependencies []interface{} `yaml:"dependencies,omitempty"`
}

// LoadCondaFile parses a conda environment file. Dependencies are either
// plain package entries or a nested map carrying the pip package list.
func LoadCondaFile(path string) (*CondaEnvironment, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file '%s': %w", path, err)
	}

	var parsed condaFile
	err = yaml.Unmarshal(content, &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment file '%s': %w", path, err)
	}

	env := &CondaEnvironment{
		Name:     parsed.Name,
		Channels: parsed.Channels,
	}

	for _, dependency := range parsed.Dependencies {
		switch dep := dependency.(type) {
		case string:
			env.Dependencies = append(env.Dependencies, dep)
		case map[interface{}]interface{}:
			for key, value := range dep {
				keyName, ok := key.(string)
				if !ok || keyName != "pip" {
					continue
				}
				pipList, ok := value.([]interface{})
				if !ok {
					continue
				}
				for _, pipEntry := range pipList {
					if pipPackage, ok := pipEntry.(string); ok {
						env.Pip = append(env.Pip, pipPackage)
					}
				}
			}
		}
	}

	return env, nil
}

// PythonVersion extracts the pinned python version from the dependency list,
// e.g. "python=3.8" yields "3.8". Empty when not pinned.
func (e *CondaEnvironment) PythonVersion() string {
	for _, dependency := range e.Dependencies {
		if strings.HasPrefix(dependency, "python=") {
			return strings.TrimPrefix(dependency, "python=")
		}
	}
	return ""
}

// CondaPackages returns the dependency list without the python pin and the
// pip bootstrap entry.
func (e *CondaEnvironment) CondaPackages() []string {
	var packages []string
	for _, dependency := range e.Dependencies {
		if strings.HasPrefix(dependency, "python=") || dependency == "pip" {
			continue
		}
		packages = append(packages, dependency)
	}
	return packages
}
