package pipeline

import (
	"github.com/trellisml/trellis/pkg/spec"
)

type BindingKind int

const (
	BindFile BindingKind = iota
	BindTabular
	BindSlot
)

func (k BindingKind) String() string {
	switch k {
	case BindFile:
		return "file"
	case BindTabular:
		return "tabular"
	case BindSlot:
		return "slot"
	}
	return "unknown"
}

// InputBinding is an input slot resolved to exactly one variant. The variant
// is picked once when the manifest loads; nothing downstream inspects the raw
// spec again.
type InputBinding struct {
	Name    string
	Kind    BindingKind
	Dataset string
	Slot    string
	Mount   bool
}

func resolveBinding(pipelineName string, stepName string, inputSpec spec.InputSpec) (*InputBinding, error) {
	kind := inputSpec.Kind
	if kind == "" {
		// Kind is optional when it is unambiguous from the fields set.
		if inputSpec.Slot != "" {
			kind = spec.InputKindSlot
		} else {
			kind = spec.InputKindFile
		}
	}

	name := inputSpec.Name
	if name == "" {
		name = inputSpec.Slot
	}

	switch kind {
	case spec.InputKindFile:
		if inputSpec.Dataset == "" {
			return nil, NewConfigurationError(pipelineName, "step '%s' file input '%s' does not name a dataset", stepName, name)
		}
		mount := true
		if inputSpec.Mount != nil {
			mount = *inputSpec.Mount
		}
		return &InputBinding{Name: name, Kind: BindFile, Dataset: inputSpec.Dataset, Mount: mount}, nil
	case spec.InputKindTabular:
		if inputSpec.Dataset == "" {
			return nil, NewConfigurationError(pipelineName, "step '%s' tabular input '%s' does not name a dataset", stepName, name)
		}
		return &InputBinding{Name: name, Kind: BindTabular, Dataset: inputSpec.Dataset}, nil
	case spec.InputKindSlot:
		if inputSpec.Slot == "" {
			return nil, NewConfigurationError(pipelineName, "step '%s' slot input '%s' does not name a slot", stepName, name)
		}
		return &InputBinding{Name: name, Kind: BindSlot, Slot: inputSpec.Slot}, nil
	}

	return nil, NewConfigurationError(pipelineName, "step '%s' input '%s' has unknown kind '%s'", stepName, name, kind)
}
