package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/registry"
	"github.com/trellisml/trellis/pkg/testutils"
)

func TestRegistry(t *testing.T) {
	testutils.EnsureTestTrellisDirectory(t)
	t.Run("testGetPipeline() -- Local registry should fetch pipeline", testGetPipeline())
	t.Run("testGetPipelineNotFound() -- Missing manifest should be a registry item not found", testGetPipelineNotFound())
	t.Run("testGetRegistryDispatch() -- Url selects the remote registry", testGetRegistryDispatch())
	t.Cleanup(testutils.CleanupTestTrellisDirectory)
}

func testGetPipeline() func(*testing.T) {
	return func(t *testing.T) {
		manifestPath := "../../test/assets/pipelines/manifests/attrition.yaml"
		r := registry.GetRegistry(manifestPath)
		_, err := r.GetPipeline(manifestPath)
		assert.NoError(t, err)

		p, err := pipeline.LoadPipelineFromManifest(".trellis/pipelines/attrition.yaml")
		if assert.NoError(t, err) {
			assert.Contains(t, p.Name, "attrition")
		}
	}
}

func testGetPipelineNotFound() func(*testing.T) {
	return func(t *testing.T) {
		r := registry.GetRegistry("does-not-exist.yaml")
		_, err := r.GetPipeline("does-not-exist.yaml")

		var itemNotFound *registry.RegistryItemNotFound
		if assert.Error(t, err) {
			assert.ErrorAs(t, err, &itemNotFound)
		}
	}
}

func testGetRegistryDispatch() func(*testing.T) {
	return func(t *testing.T) {
		assert.IsType(t, &registry.RemoteRegistry{}, registry.GetRegistry("https://registry.trellisml.dev/pipelines/attrition.zip"))
		assert.IsType(t, &registry.LocalFileRegistry{}, registry.GetRegistry("manifests/attrition.yaml"))
	}
}
