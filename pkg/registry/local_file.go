package registry

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/util"
)

type LocalFileRegistry struct{}

func (r *LocalFileRegistry) GetPipeline(pipelinePath string) (string, error) {
	input, err := ioutil.ReadFile(pipelinePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", NewRegistryItemNotFound(fmt.Errorf("pipeline manifest not found at %s", pipelinePath))
		}
		return "", fmt.Errorf("error fetching pipeline %s: %w", pipelinePath, err)
	}

	manifestsDir := config.PipelinesManifestsPath()
	if _, err = os.Stat(manifestsDir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("error fetching pipeline %s: %w", pipelinePath, err)
		}
		_, err = util.MkDirAllInheritPerm(manifestsDir)
		if err != nil {
			return "", fmt.Errorf("error fetching pipeline %s: %w", pipelinePath, err)
		}
	}

	manifestFileName := filepath.Base(pipelinePath)

	manifestPath := filepath.Join(manifestsDir, manifestFileName)

	err = ioutil.WriteFile(manifestPath, input, 0644)
	if err != nil {
		return "", fmt.Errorf("error fetching pipeline %s", pipelinePath)
	}

	return manifestPath, nil
}
