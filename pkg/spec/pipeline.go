package spec

type PipelineSpec struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description,omitempty"`
	Workspace   string            `json:"workspace,omitempty" yaml:"workspace,omitempty" mapstructure:"workspace,omitempty"`
	Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params,omitempty"`
	Compute     *ComputeSpec      `json:"compute,omitempty" yaml:"compute,omitempty" mapstructure:"compute,omitempty"`
	Environment *EnvironmentSpec  `json:"environment,omitempty" yaml:"environment,omitempty" mapstructure:"environment,omitempty"`
	Datasets    []DatasetSpec     `json:"datasets,omitempty" yaml:"datasets,omitempty" mapstructure:"datasets,omitempty"`
	Steps       []StepSpec        `json:"steps,omitempty" yaml:"steps,omitempty" mapstructure:"steps,omitempty"`
	Schedule    *ScheduleSpec     `json:"schedule,omitempty" yaml:"schedule,omitempty" mapstructure:"schedule,omitempty"`
}
