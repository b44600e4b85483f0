package pipeline

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/runs"
	"github.com/trellisml/trellis/pkg/schedule"
	"github.com/trellisml/trellis/pkg/spec"
	"github.com/trellisml/trellis/pkg/util"
	"github.com/trellisml/trellis/pkg/validator"
)

type Pipeline struct {
	spec.PipelineSpec
	viper        *viper.Viper
	params       *Params
	hash         string
	manifestPath string

	graph     *Graph
	bindings  map[string][]*InputBinding
	schedule  *schedule.Schedule
	configErr error

	runsMutex sync.RWMutex
	runs      map[string]*runs.Run
	runOrder  []string
}

func (p *Pipeline) Hash() string {
	return p.hash
}

func (p *Pipeline) ManifestPath() string {
	return p.manifestPath
}

func (p *Pipeline) Graph() *Graph {
	return p.graph
}

// Bindings returns the step's resolved input bindings in declaration order.
func (p *Pipeline) Bindings(stepName string) []*InputBinding {
	return p.bindings[stepName]
}

// Schedule returns the trigger bound to this pipeline, or nil when the
// manifest declares none.
func (p *Pipeline) Schedule() *schedule.Schedule {
	return p.schedule
}

func (p *Pipeline) ProvisioningTimeout() time.Duration {
	return p.params.ProvisioningTimeout
}

func (p *Pipeline) PollInterval() time.Duration {
	return p.params.PollInterval
}

func (p *Pipeline) Publish() bool {
	return p.params.Publish
}

// EffectiveComputeTarget resolves the compute target a step runs on: the
// step's own target when set, otherwise the pipeline-level compute name.
func (p *Pipeline) EffectiveComputeTarget(step *spec.StepSpec) string {
	if step.ComputeTarget != "" {
		return step.ComputeTarget
	}
	if p.Compute != nil {
		return p.Compute.Name
	}
	return ""
}

// ComputeTargets returns the distinct compute target names used by the
// pipeline's steps, sorted.
func (p *Pipeline) ComputeTargets() []string {
	seen := make(map[string]bool)
	var targets []string
	for i := range p.Steps {
		target := p.EffectiveComputeTarget(&p.Steps[i])
		if target != "" && !seen[target] {
			seen[target] = true
			targets = append(targets, target)
		}
	}
	sort.Strings(targets)
	return targets
}

// DatasetNames returns the names of all datasets the steps consume, sorted.
func (p *Pipeline) DatasetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, bindings := range p.bindings {
		for _, binding := range bindings {
			if binding.Dataset != "" && !seen[binding.Dataset] {
				seen[binding.Dataset] = true
				names = append(names, binding.Dataset)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (p *Pipeline) GetDatasetSpec(name string) *spec.DatasetSpec {
	for i := range p.Datasets {
		if p.Datasets[i].Name == name {
			return &p.Datasets[i]
		}
	}
	return nil
}

func (p *Pipeline) Runs() []*runs.Run {
	p.runsMutex.RLock()
	defer p.runsMutex.RUnlock()

	result := make([]*runs.Run, 0, len(p.runOrder))
	for _, id := range p.runOrder {
		result = append(result, p.runs[id])
	}
	return result
}

func (p *Pipeline) GetRun(id string) *runs.Run {
	p.runsMutex.RLock()
	defer p.runsMutex.RUnlock()

	return p.runs[id]
}

func (p *Pipeline) AddRun(run *runs.Run) {
	p.runsMutex.Lock()
	defer p.runsMutex.Unlock()

	if _, ok := p.runs[run.Id()]; !ok {
		p.runOrder = append(p.runOrder, run.Id())
	}
	p.runs[run.Id()] = run
}

// Validate checks the manifest-level contracts before anything is sent to
// the platform. All failures are ConfigurationErrors.
func (p *Pipeline) Validate() error {
	if p.configErr != nil {
		return p.configErr
	}

	if p.Name == "" {
		return NewConfigurationError("", "pipeline has no name")
	}

	if len(p.Steps) == 0 {
		return NewConfigurationError(p.Name, "pipeline has no steps")
	}

	declaredDatasets := make(map[string]bool, len(p.Datasets))
	for _, dataset := range p.Datasets {
		if dataset.Name == "" {
			return NewConfigurationError(p.Name, "dataset declared without a name")
		}
		declaredDatasets[dataset.Name] = true
	}

	stepNames := make(map[string]bool, len(p.Steps))
	for i := range p.Steps {
		step := &p.Steps[i]
		if step.Name == "" {
			return NewConfigurationError(p.Name, "step declared without a name")
		}
		if stepNames[step.Name] {
			return NewConfigurationError(p.Name, "duplicate step name '%s'", step.Name)
		}
		stepNames[step.Name] = true

		if !validator.ValidateStepName(step.Name) {
			return NewConfigurationError(p.Name, "invalid step name '%s'", step.Name)
		}

		if step.Script == "" {
			return NewConfigurationError(p.Name, "step '%s' has no script", step.Name)
		}

		for _, output := range step.Outputs {
			if !validator.ValidateSlotName(output.Slot) {
				return NewConfigurationError(p.Name, "step '%s' declares invalid slot name '%s'", step.Name, output.Slot)
			}
		}

		if p.EffectiveComputeTarget(step) == "" {
			return NewConfigurationError(p.Name, "step '%s' has no compute target", step.Name)
		}

		for _, binding := range p.bindings[step.Name] {
			if binding.Dataset != "" && !declaredDatasets[binding.Dataset] {
				return NewConfigurationError(p.Name, "step '%s' references dataset '%s' which is not declared", step.Name, binding.Dataset)
			}
		}
	}

	return nil
}

// Plan renders a stable, human-readable description of the pipeline graph.
func (p *Pipeline) Plan() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "pipeline: %s\n", p.Name)
	fmt.Fprintf(&sb, "steps:\n")
	for i := range p.Steps {
		step := &p.Steps[i]
		fmt.Fprintf(&sb, "  %s (%s on %s)\n", step.Name, step.Script, p.EffectiveComputeTarget(step))
		for _, binding := range p.bindings[step.Name] {
			switch binding.Kind {
			case BindSlot:
				fmt.Fprintf(&sb, "    input %s <- slot %s\n", binding.Name, binding.Slot)
			case BindFile:
				fmt.Fprintf(&sb, "    input %s <- file dataset %s\n", binding.Name, binding.Dataset)
			case BindTabular:
				fmt.Fprintf(&sb, "    input %s <- tabular dataset %s\n", binding.Name, binding.Dataset)
			}
		}
		for _, output := range step.Outputs {
			fmt.Fprintf(&sb, "    output -> slot %s\n", output.Slot)
		}
	}

	if len(p.graph.Edges) > 0 {
		fmt.Fprintf(&sb, "edges:\n")
		for _, edge := range p.graph.Edges {
			fmt.Fprintf(&sb, "  %s -> %s (%s)\n", edge.From, edge.To, edge.Slot)
		}
	}

	if p.schedule != nil {
		fmt.Fprintf(&sb, "schedule: %s\n", p.schedule.String())
	}

	return sb.String()
}

type Params struct {
	ProvisioningTimeout time.Duration
	PollInterval        time.Duration
	Publish             bool
}

func NewParams() *Params {
	return &Params{
		ProvisioningTimeout: time.Minute * 20,
		PollInterval:        time.Second * 10,
	}
}

func (p *Pipeline) loadParams() error {
	params := NewParams()

	if p.PipelineSpec.Params != nil {
		str, ok := p.PipelineSpec.Params["provisioning_timeout"]
		if ok {
			val, err := time.ParseDuration(str)
			if err != nil {
				return err
			}
			params.ProvisioningTimeout = val
		}

		str, ok = p.PipelineSpec.Params["poll_interval"]
		if ok {
			val, err := time.ParseDuration(str)
			if err != nil {
				return err
			}
			params.PollInterval = val
		}

		str, ok = p.PipelineSpec.Params["publish"]
		if ok {
			val, err := cast.ToBoolE(str)
			if err != nil {
				return err
			}
			params.Publish = val
		}
	}

	// The manifest compute block may override the provisioning timeout.
	if p.Compute != nil && p.Compute.ProvisioningTimeoutSeconds > 0 {
		params.ProvisioningTimeout = time.Duration(p.Compute.ProvisioningTimeoutSeconds) * time.Second
	}

	p.params = params

	return nil
}

func unmarshalPipeline(manifestPath string) (*Pipeline, error) {
	manifestBytes, err := util.ReplaceEnvVariablesFromPath(manifestPath, config.TrellisEnvVarPrefix)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")

	err = v.ReadConfig(bytes.NewBuffer(manifestBytes))
	if err != nil {
		return nil, err
	}

	var pipelineSpec *spec.PipelineSpec

	err = v.Unmarshal(&pipelineSpec)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		PipelineSpec: *pipelineSpec,
		viper:        v,
		runsMutex:    sync.RWMutex{},
	}

	return p, nil
}

func loadPipeline(manifestPath string, hash string) (*Pipeline, error) {
	p, err := unmarshalPipeline(manifestPath)
	if err != nil {
		return nil, err
	}

	err = p.loadParams()
	if err != nil {
		return nil, fmt.Errorf("error loading pipeline params: %s", err.Error())
	}

	p.manifestPath = manifestPath
	p.hash = hash
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(manifestPath), filepath.Ext(manifestPath))
	}

	p.runs = make(map[string]*runs.Run)

	// Bindings and the graph are resolved once here; a manifest that cannot
	// produce a valid graph still loads, and surfaces the failure from
	// Validate().
	p.bindings = make(map[string][]*InputBinding, len(p.Steps))
	for i := range p.Steps {
		step := &p.Steps[i]
		for _, inputSpec := range step.Inputs {
			binding, err := resolveBinding(p.Name, step.Name, inputSpec)
			if err != nil {
				if p.configErr == nil {
					p.configErr = err
				}
				continue
			}
			p.bindings[step.Name] = append(p.bindings[step.Name], binding)
		}
	}

	if p.configErr == nil {
		p.graph, err = buildGraph(p)
		if err != nil {
			p.configErr = err
			p.graph = &Graph{}
		}
	} else {
		p.graph = &Graph{}
	}

	if p.PipelineSpec.Schedule != nil {
		p.schedule, err = schedule.FromSpec(p.PipelineSpec.Schedule)
		if err != nil && p.configErr == nil {
			p.configErr = NewConfigurationError(p.Name, "invalid schedule: %s", err.Error())
		}
	}

	return p, nil
}
