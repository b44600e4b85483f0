package runtime

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/pipeline"
)

func ensureManifestsPathExists() error {
	if _, err := os.Stat(config.PipelinesManifestsPath()); os.IsNotExist(err) {
		err := os.MkdirAll(config.PipelinesManifestsPath(), 0766)
		if err != nil {
			return err
		}
	}
	return nil
}

func watchPipelines() error {
	manifestsDir := config.PipelinesManifestsPath()
	if err := ensureManifestsPathExists(); err != nil {
		// Ignore this error, just don't watch
		return nil
	}

	go func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Println(fmt.Errorf("error starting '%s' watcher: %w", manifestsDir, err))
		}
		defer watcher.Close()

		if err := watcher.Add(manifestsDir); err != nil {
			log.Println(fmt.Errorf("error starting '%s' watcher: %w", manifestsDir, err))
		}
		for {
			select {
			case event := <-watcher.Events:
				err := processNotifyEvent(event)
				if err != nil {
					log.Println(err)
				}
			case err := <-watcher.Errors:
				log.Println(fmt.Errorf("error from '%s' watcher: %w", manifestsDir, err))
			}
		}
	}()

	return nil
}

func processNotifyEvent(event fsnotify.Event) error {
	manifestPath := event.Name
	ext := filepath.Ext(manifestPath)
	if ext != ".yml" && ext != ".yaml" {
		// Ignore non-YAML files
		return nil
	}

	switch event.Op {
	case fsnotify.Create:
		_, err := initializePipeline(manifestPath)
		if err != nil {
			return err
		}
	case fsnotify.Write:
		newPipeline, err := pipeline.LoadPipelineFromManifest(manifestPath)
		if err != nil {
			return err
		}
		existingPipeline := pipeline.GetPipeline(newPipeline.Name)
		if existingPipeline != nil && newPipeline.Hash() == existingPipeline.Hash() {
			// Nothing changed, ignore
			break
		}
		pipeline.CreateOrUpdatePipeline(newPipeline)
	case fsnotify.Remove:
		pipeline.RemovePipelineByManifestPath(manifestPath)
		return nil
	}

	return nil
}
