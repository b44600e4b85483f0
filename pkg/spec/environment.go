package spec

type EnvironmentSpec struct {
	Name          string   `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	CondaFile     string   `json:"conda_file,omitempty" yaml:"conda_file,omitempty" mapstructure:"conda_file,omitempty"`
	PythonVersion string   `json:"python_version,omitempty" yaml:"python_version,omitempty" mapstructure:"python_version,omitempty"`
	CondaPackages []string `json:"conda_packages,omitempty" yaml:"conda_packages,omitempty" mapstructure:"conda_packages,omitempty"`
	PipPackages   []string `json:"pip_packages,omitempty" yaml:"pip_packages,omitempty" mapstructure:"pip_packages,omitempty"`
}
