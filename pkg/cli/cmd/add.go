package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/registry"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add Pipeline - adds a pipeline to the project",
	Args:  cobra.MinimumNArgs(1),
	Example: `
trellis add samples/attrition.yaml
trellis add https://registry.trellisml.dev/pipelines/attrition.zip
`,
	Run: func(cmd *cobra.Command, args []string) {
		pipelinePath := args[0]

		fmt.Printf("Getting Pipeline %s ...\n", pipelinePath)

		r := registry.GetRegistry(pipelinePath)
		downloadPath, err := r.GetPipeline(pipelinePath)
		if err != nil {
			var itemNotFound *registry.RegistryItemNotFound
			if errors.As(err, &itemNotFound) {
				fmt.Printf("No pipeline found with the name '%s'.\n", pipelinePath)
			} else {
				fmt.Println(err)
			}
			return
		}

		relativePath := config.GetTrellisAppRelativePath(downloadPath)

		fmt.Printf("Added %s\n", relativePath)
	},
}

func init() {
	addCmd.Flags().BoolP("help", "h", false, "Print this help message")
	RootCmd.AddCommand(addCmd)
}
