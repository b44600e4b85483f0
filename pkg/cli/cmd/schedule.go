package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/trellisml/trellis/pkg/platform"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule Pipeline - publishes a pipeline and attaches its trigger",
	Example: `
trellis schedule attrition
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, runtimeConfig, err := GetPipelineAndConfiguration(args[0])
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		if p.Schedule() == nil {
			fmt.Printf("the pipeline '%s' declares no schedule\n", p.Name)
			os.Exit(1)
		}

		client, err := getPlatformClient(runtimeConfig)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		defer client.Close()

		result, err := platform.Deploy(context.Background(), client, p, platform.DeployOptions{
			SkipSubmit: true,
			Workspace:  runtimeConfig.PlatformWorkspace(),
		})
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		fmt.Println(aurora.Green(fmt.Sprintf("scheduled %s: %s", result.Schedule.Name, p.Schedule().String())))
	},
}

func init() {
	scheduleCmd.Flags().BoolP("help", "h", false, "Print this help message")
	RootCmd.AddCommand(scheduleCmd)
}
