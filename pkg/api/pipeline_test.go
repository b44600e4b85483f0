package api

import (
	"testing"

	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/testutils"
)

func TestNewPipeline(t *testing.T) {
	snapshotter := testutils.NewSnapshotter("../../test/assets/snapshots/api/pipeline")

	p, err := pipeline.LoadPipelineFromManifest("../../test/assets/pipelines/manifests/attrition.yaml")
	if err != nil {
		t.Fatal(err)
	}

	apiPipeline := NewPipeline(p)

	snapshotter.SnapshotTJson(t, apiPipeline)
}
