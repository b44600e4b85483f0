package pipeline

import (
	"io/ioutil"
	"log"
	"path/filepath"

	"github.com/logrusorgru/aurora"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/util"
)

var pipelines = make(map[string]*Pipeline)

func Pipelines() *map[string]*Pipeline {
	return &pipelines
}

func CreateOrUpdatePipeline(p *Pipeline) {
	pipelines[p.Name] = p
}

func GetPipeline(name string) *Pipeline {
	return pipelines[name]
}

func RemovePipeline(name string) {
	delete(pipelines, name)
}

func RemovePipelineByManifestPath(manifestPath string) {
	relativePath := config.GetTrellisAppRelativePath(manifestPath)
	for _, p := range pipelines {
		if p.ManifestPath() == manifestPath {
			log.Printf("Removing pipeline %s: %s\n", aurora.Bold(p.Name), aurora.Gray(12, relativePath))
			RemovePipeline(p.Name)
			return
		}
	}
}

func FindFirstManifestPath() string {
	manifestsPath := config.PipelinesManifestsPath()
	files, err := ioutil.ReadDir(manifestsPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	for _, file := range files {
		extension := filepath.Ext(file.Name())
		if extension == ".yml" || extension == ".yaml" {
			return filepath.Join(manifestsPath, file.Name())
		}
	}

	return ""
}

func LoadPipelineFromManifest(manifestPath string) (*Pipeline, error) {
	manifestHash, err := util.MD5Hash(manifestPath)
	if err != nil {
		log.Printf("Error: Failed to compute hash for manifest '%s: %s\n", manifestPath, err)
		return nil, err
	}

	p, err := loadPipeline(manifestPath, manifestHash)
	if err != nil {
		log.Printf("Error: Failed to load manifest '%s': %s\n", manifestPath, err)
		return nil, err
	}

	return p, nil
}
