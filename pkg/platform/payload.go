package platform

import (
	"github.com/trellisml/trellis/pkg/pipeline"
)

// PipelinePayload is the descriptor handed to the platform on validate,
// submit, and publish. It carries the resolved input bindings, never the raw
// manifest.
type PipelinePayload struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Workspace   string                 `json:"workspace"`
	Environment *EnvironmentDefinition `json:"environment,omitempty"`
	Steps       []StepPayload          `json:"steps"`
}

type StepPayload struct {
	Name          string          `json:"name"`
	Script        string          `json:"script"`
	ComputeTarget string          `json:"compute_target"`
	Arguments     []string        `json:"arguments,omitempty"`
	Inputs        []InputPayload  `json:"inputs,omitempty"`
	Outputs       []OutputPayload `json:"outputs,omitempty"`
	AllowReuse    bool            `json:"allow_reuse"`
}

type InputPayload struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Dataset string `json:"dataset,omitempty"`
	Slot    string `json:"slot,omitempty"`
	Mount   bool   `json:"mount,omitempty"`
}

type OutputPayload struct {
	Slot            string `json:"slot"`
	Datastore       string `json:"datastore,omitempty"`
	PathOnDatastore string `json:"path_on_datastore,omitempty"`
}

type EnvironmentDefinition struct {
	Name          string   `json:"name"`
	PythonVersion string   `json:"python_version,omitempty"`
	Channels      []string `json:"channels,omitempty"`
	CondaPackages []string `json:"conda_packages,omitempty"`
	PipPackages   []string `json:"pip_packages,omitempty"`
}

// BuildPayload converts a validated pipeline into its wire descriptor.
func BuildPayload(p *pipeline.Pipeline, environment *EnvironmentDefinition) *PipelinePayload {
	payload := &PipelinePayload{
		Name:        p.Name,
		Description: p.Description,
		Workspace:   p.Workspace,
		Environment: environment,
	}

	for i := range p.Steps {
		step := &p.Steps[i]

		stepPayload := StepPayload{
			Name:          step.Name,
			Script:        step.Script,
			ComputeTarget: p.EffectiveComputeTarget(step),
			Arguments:     step.Arguments,
		}

		if step.AllowReuse != nil {
			stepPayload.AllowReuse = *step.AllowReuse
		}

		for _, binding := range p.Bindings(step.Name) {
			stepPayload.Inputs = append(stepPayload.Inputs, InputPayload{
				Name:    binding.Name,
				Kind:    binding.Kind.String(),
				Dataset: binding.Dataset,
				Slot:    binding.Slot,
				Mount:   binding.Mount,
			})
		}

		for _, output := range step.Outputs {
			stepPayload.Outputs = append(stepPayload.Outputs, OutputPayload{
				Slot:            output.Slot,
				Datastore:       output.Datastore,
				PathOnDatastore: output.PathOnDatastore,
			})
		}

		payload.Steps = append(payload.Steps, stepPayload)
	}

	return payload
}
