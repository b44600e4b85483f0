package diagnostics

import (
	"fmt"
	"os"
	"strings"

	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/version"
)

func GenerateReport() (string, error) {
	body := strings.Builder{}

	body.WriteString("## Diagnostics Report\n\n")

	body.WriteString("Daemon\n")
	body.WriteString("---------------\n")
	body.WriteString(fmt.Sprintf("version: %s\n", version.Version()))
	body.WriteString(fmt.Sprintf("app_dir: %s\n", config.AppPath()))
	body.WriteString(fmt.Sprintf("manifests_dir: %s\n", config.PipelinesManifestsPath()))
	body.WriteString("\n\n")

	manifestsDirEntries, err := os.ReadDir(config.PipelinesManifestsPath())
	if err != nil {
		return "", err
	}

	body.WriteString(fmt.Sprintf("Manifests Directory Contents (%d entries)\n", len(manifestsDirEntries)))
	body.WriteString("---------------\n")

	for _, entry := range manifestsDirEntries {
		body.WriteString(entry.Name())
		body.WriteString("\n")
	}

	body.WriteString("\n")

	pipelines := pipeline.Pipelines()
	body.WriteString(fmt.Sprintf("Loaded Pipelines (%d)\n", len(*pipelines)))
	body.WriteString("---------------\n")

	for _, p := range *pipelines {
		body.WriteString(fmt.Sprintf("%s (workspace: %s)\n", p.Name, p.Workspace))
	}

	body.WriteString("\n")

	return body.String(), nil
}
