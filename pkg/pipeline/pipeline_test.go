package pipeline

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trellisml/trellis/pkg/schedule"
	"github.com/trellisml/trellis/pkg/testutils"
)

var snapshotter = testutils.NewSnapshotter("../../test/assets/snapshots/pipelines")

func TestPipeline(t *testing.T) {
	type TestPipelineParams struct {
		ValidConfiguration bool
		ExpectedEdges      int
	}
	manifestsToTest := map[string]*TestPipelineParams{
		"attrition.yaml": {
			ValidConfiguration: true,
			ExpectedEdges:      1,
		},
		"attrition-storage-trigger.yaml": {
			ValidConfiguration: true,
			ExpectedEdges:      1,
		},
		"attrition-no-producer.yaml": {
			ValidConfiguration: false,
		},
		"attrition-no-compute.yaml": {
			ValidConfiguration: false,
		},
		"attrition-missing-dataset.yaml": {
			ValidConfiguration: false,
		},
		"attrition-both-triggers.yaml": {
			ValidConfiguration: false,
		},
	}

	for manifestToTest, testParams := range manifestsToTest {
		manifestPath := filepath.Join("../../test/assets/pipelines/manifests", manifestToTest)

		p, err := LoadPipelineFromManifest(manifestPath)
		if err != nil {
			t.Error(err)
			return
		}

		t.Run(fmt.Sprintf("Base Properties - %s", manifestToTest), testBasePropertiesFunc(p, manifestPath))
		t.Run(fmt.Sprintf("Validate() - %s", manifestToTest), testValidateFunc(p, testParams.ValidConfiguration))

		if testParams.ValidConfiguration {
			t.Run(fmt.Sprintf("Graph() - %s", manifestToTest), testGraphFunc(p, testParams.ExpectedEdges))
		}
	}
}

func testBasePropertiesFunc(p *Pipeline, manifestPath string) func(*testing.T) {
	return func(t *testing.T) {
		assert.NotEmpty(t, p.Hash(), "invalid pipeline.Hash()")
		assert.Equal(t, manifestPath, p.ManifestPath())
		assert.Equal(t, "mlops-workspace", p.Workspace)

		reloaded, err := LoadPipelineFromManifest(manifestPath)
		if err != nil {
			t.Error(err)
			return
		}
		assert.Equal(t, p.Hash(), reloaded.Hash(), "hash must be stable across loads")
	}
}

func testValidateFunc(p *Pipeline, valid bool) func(*testing.T) {
	return func(t *testing.T) {
		err := p.Validate()
		if valid {
			assert.NoError(t, err)
			return
		}

		if assert.Error(t, err) {
			var configErr *ConfigurationError
			assert.ErrorAs(t, err, &configErr)
		}
	}
}

func testGraphFunc(p *Pipeline, expectedEdges int) func(*testing.T) {
	return func(t *testing.T) {
		graph := p.Graph()
		assert.Equal(t, []string{"dataprep", "train"}, graph.Nodes)
		assert.Equal(t, expectedEdges, len(graph.Edges))

		// The slot produced by step 1 must be the slot consumed by step 2.
		edge := graph.Edges[0]
		assert.Equal(t, "dataprep", edge.From)
		assert.Equal(t, "train", edge.To)
		assert.Equal(t, "training_data", edge.Slot)
	}
}

func TestPipelineBindings(t *testing.T) {
	p, err := LoadPipelineFromManifest("../../test/assets/pipelines/manifests/attrition.yaml")
	if err != nil {
		t.Error(err)
		return
	}

	dataprepBindings := p.Bindings("dataprep")
	if assert.Equal(t, 1, len(dataprepBindings)) {
		assert.Equal(t, BindTabular, dataprepBindings[0].Kind)
		assert.Equal(t, "employee-attrition", dataprepBindings[0].Dataset)
		assert.Empty(t, dataprepBindings[0].Slot)
	}

	trainBindings := p.Bindings("train")
	if assert.Equal(t, 1, len(trainBindings)) {
		assert.Equal(t, BindSlot, trainBindings[0].Kind)
		assert.Equal(t, "training_data", trainBindings[0].Slot)
		assert.Empty(t, trainBindings[0].Dataset)
	}

	assert.Equal(t, []string{"employee-attrition"}, p.DatasetNames())
	assert.Equal(t, []string{"cpu-cluster"}, p.ComputeTargets())
}

func TestPipelineSchedule(t *testing.T) {
	p, err := LoadPipelineFromManifest("../../test/assets/pipelines/manifests/attrition.yaml")
	if err != nil {
		t.Error(err)
		return
	}

	s := p.Schedule()
	if assert.NotNil(t, s) {
		assert.Equal(t, schedule.KindRecurrence, s.Kind)
		assert.Equal(t, "every other day at 22:30", s.String())
	}
}

func TestPipelinePlan(t *testing.T) {
	p, err := LoadPipelineFromManifest("../../test/assets/pipelines/manifests/attrition.yaml")
	if err != nil {
		t.Error(err)
		return
	}

	snapshotter.SnapshotT(t, p.Plan())
}
