package api

import (
	"github.com/trellisml/trellis/pkg/pipeline"
)

type Pipeline struct {
	Name           string   `json:"name" csv:"name"`
	ManifestPath   string   `json:"manifest_path" csv:"manifest_path"`
	Workspace      string   `json:"workspace" csv:"workspace"`
	ComputeTargets []string `json:"compute_targets" csv:"-"`
	Datasets       []string `json:"datasets" csv:"-"`
	Schedule       string   `json:"schedule,omitempty" csv:"schedule"`
}

func NewPipeline(p *pipeline.Pipeline) *Pipeline {
	apiPipeline := &Pipeline{
		Name:           p.Name,
		ManifestPath:   p.ManifestPath(),
		Workspace:      p.Workspace,
		ComputeTargets: p.ComputeTargets(),
		Datasets:       p.DatasetNames(),
	}

	if p.Schedule() != nil {
		apiPipeline.Schedule = p.Schedule().String()
	}

	return apiPipeline
}
