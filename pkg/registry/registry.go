package registry

import (
	"strings"
)

// PipelineRegistry fetches a pipeline manifest into the app's .trellis
// directory and returns the path it was written to.
type PipelineRegistry interface {
	GetPipeline(pipelinePath string) (string, error)
}

func GetRegistry(path string) PipelineRegistry {
	if strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return &RemoteRegistry{}
	}

	return &LocalFileRegistry{}
}
