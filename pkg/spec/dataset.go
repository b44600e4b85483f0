package spec

type DatasetSpec struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind,omitempty"`
	Datastore string `json:"datastore,omitempty" yaml:"datastore,omitempty" mapstructure:"datastore,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path,omitempty"`
}
