package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/trellisml/trellis/pkg/platform"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish Pipeline - registers a pipeline as a reusable endpoint without running it",
	Example: `
trellis publish attrition
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, runtimeConfig, err := GetPipelineAndConfiguration(args[0])
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		client, err := getPlatformClient(runtimeConfig)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		defer client.Close()

		result, err := platform.Deploy(context.Background(), client, p, platform.DeployOptions{
			Publish:    true,
			SkipSubmit: true,
			Workspace:  runtimeConfig.PlatformWorkspace(),
		})
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		fmt.Println(aurora.Green(fmt.Sprintf("published as %s", result.Published.Id)))
	},
}

func init() {
	publishCmd.Flags().BoolP("help", "h", false, "Print this help message")
	RootCmd.AddCommand(publishCmd)
}
