package spec

type ComputeSpec struct {
	Name                       string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	VMSize                     string `json:"vm_size,omitempty" yaml:"vm_size,omitempty" mapstructure:"vm_size,omitempty"`
	MinNodes                   int    `json:"min_nodes" yaml:"min_nodes" mapstructure:"min_nodes"`
	MaxNodes                   int    `json:"max_nodes,omitempty" yaml:"max_nodes,omitempty" mapstructure:"max_nodes,omitempty"`
	IdleSeconds                int    `json:"idle_seconds,omitempty" yaml:"idle_seconds,omitempty" mapstructure:"idle_seconds,omitempty"`
	ProvisioningTimeoutSeconds int    `json:"provisioning_timeout_seconds,omitempty" yaml:"provisioning_timeout_seconds,omitempty" mapstructure:"provisioning_timeout_seconds,omitempty"`
}
