package spec

const (
	// InputKindFile mounts file-backed data at a path passed to the script.
	InputKindFile = "file"
	// InputKindTabular passes a named tabular dataset reference to the script.
	InputKindTabular = "tabular"
	// InputKindSlot consumes an intermediate data slot produced by another step.
	InputKindSlot = "slot"
)

type StepSpec struct {
	Name          string       `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	Script        string       `json:"script,omitempty" yaml:"script,omitempty" mapstructure:"script,omitempty"`
	ComputeTarget string       `json:"compute_target,omitempty" yaml:"compute_target,omitempty" mapstructure:"compute_target,omitempty"`
	Arguments     []string     `json:"arguments,omitempty" yaml:"arguments,omitempty" mapstructure:"arguments,omitempty"`
	Inputs        []InputSpec  `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs,omitempty"`
	Outputs       []OutputSpec `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs,omitempty"`
	AllowReuse    *bool        `json:"allow_reuse,omitempty" yaml:"allow_reuse,omitempty" mapstructure:"allow_reuse,omitempty"`
}

type InputSpec struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind,omitempty"`
	Dataset string `json:"dataset,omitempty" yaml:"dataset,omitempty" mapstructure:"dataset,omitempty"`
	Slot    string `json:"slot,omitempty" yaml:"slot,omitempty" mapstructure:"slot,omitempty"`
	Mount   *bool  `json:"mount,omitempty" yaml:"mount,omitempty" mapstructure:"mount,omitempty"`
}

// OutputSpec declares an intermediate data slot the step writes. Slots are
// write-once; a downstream step consumes the slot by name.
type OutputSpec struct {
	Slot            string `json:"slot,omitempty" yaml:"slot,omitempty" mapstructure:"slot,omitempty"`
	Datastore       string `json:"datastore,omitempty" yaml:"datastore,omitempty" mapstructure:"datastore,omitempty"`
	PathOnDatastore string `json:"path_on_datastore,omitempty" yaml:"path_on_datastore,omitempty" mapstructure:"path_on_datastore,omitempty"`
}
