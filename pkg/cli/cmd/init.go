package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/spec"
	"github.com/trellisml/trellis/pkg/util"
	"gopkg.in/yaml.v2"
)

var (
	//go:embed scripts/dataprep.py
	dataprepScript []byte

	//go:embed scripts/train.py
	trainScript []byte
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Pipeline - initializes a new pipeline in the project",
	Example: `
trellis init <pipeline name>
trellis init attrition
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pipelineName := args[0]
		manifestFileName := fmt.Sprintf("%s.yaml", strings.ToLower(pipelineName))

		manifestsPath := config.PipelinesManifestsPath()
		manifestPath := filepath.Join(manifestsPath, manifestFileName)
		appRelativeManifestPath := config.GetTrellisAppRelativePath(manifestPath)

		if _, err := os.Stat(manifestPath); !os.IsNotExist(err) {
			cmd.Printf("Pipeline manifest already exists at %s. Replace (y/n)? \n", appRelativeManifestPath)
			var confirm string
			fmt.Scanf("%s", &confirm)
			if strings.ToLower(strings.TrimSpace(confirm)) != "y" {
				return
			}
		}

		skeletonPipeline := &spec.PipelineSpec{
			Name: pipelineName,
			Compute: &spec.ComputeSpec{
				Name:        "cpu-cluster",
				VMSize:      "STANDARD_D2_V2",
				MinNodes:    0,
				MaxNodes:    4,
				IdleSeconds: 1200,
			},
			Datasets: make([]spec.DatasetSpec, 1),
			Steps: []spec.StepSpec{
				{
					Name:      "dataprep",
					Script:    "scripts/dataprep.py",
					Arguments: []string{"--output-folder", "prepped"},
					Outputs: []spec.OutputSpec{
						{Slot: "training_data"},
					},
				},
				{
					Name:      "train",
					Script:    "scripts/train.py",
					Arguments: []string{"--regularization", "1.0"},
					Inputs: []spec.InputSpec{
						{Name: "training_data", Kind: spec.InputKindSlot, Slot: "training_data"},
					},
				},
			},
		}

		skeletonContentBytes, err := yaml.Marshal(skeletonPipeline)
		if err != nil {
			cmd.Println(err)
			return
		}

		// HACKHACK: In place of properly marshalling comments
		skeletonContent := string(skeletonContentBytes)

		workspaceComment := "# Set the workspace this pipeline deploys to, or configure platform.workspace in .trellis/config.yaml\n"
		skeletonContent, _ = util.AddElementToString(skeletonContent, workspaceComment, "name: "+pipelineName, false)

		datasetsComment := "# Register the datasets the steps consume here\n"
		skeletonContent, _ = util.AddElementToString(skeletonContent, datasetsComment, "datasets:", true)

		err = os.MkdirAll(manifestsPath, 0766)
		if err != nil {
			cmd.Println(err)
			return
		}

		err = os.WriteFile(manifestPath, []byte(skeletonContent), 0766)
		if err != nil {
			cmd.Println(err)
			return
		}

		err = writeStepScripts(config.ScriptsPath())
		if err != nil {
			cmd.Println(err)
			return
		}

		cmd.Printf("Trellis pipeline manifest initialized at %s!\n", appRelativeManifestPath)
	},
}

// writeStepScripts scaffolds the two step scripts next to the manifest.
// Existing scripts are left untouched.
func writeStepScripts(scriptsPath string) error {
	err := os.MkdirAll(scriptsPath, 0766)
	if err != nil {
		return err
	}

	scripts := map[string][]byte{
		"dataprep.py": dataprepScript,
		"train.py":    trainScript,
	}

	for name, content := range scripts {
		scriptPath := filepath.Join(scriptsPath, name)
		if _, err := os.Stat(scriptPath); err == nil {
			continue
		}

		err = os.WriteFile(scriptPath, content, 0766)
		if err != nil {
			return err
		}
	}

	return nil
}

func init() {
	initCmd.Flags().BoolP("help", "h", false, "Print this help message")
	RootCmd.AddCommand(initCmd)
}
