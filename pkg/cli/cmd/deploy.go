package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/platform"
)

var (
	publishFlag    bool
	skipSubmitFlag bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy Pipeline - validates, provisions, and submits a pipeline run",
	Example: `
trellis deploy attrition
trellis deploy attrition --publish
trellis deploy attrition --skip-submit
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
			Publish:    publishFlag,
			SkipSubmit: skipSubmitFlag,
			Workspace:  runtimeConfig.PlatformWorkspace(),
		})
		if err != nil {
			var configErr *pipeline.ConfigurationError
			if errors.As(err, &configErr) {
				fmt.Println(aurora.Red(err.Error()))
			} else {
				fmt.Println(err.Error())
			}
			os.Exit(1)
		}

		if result.Run != nil {
			fmt.Println(aurora.Green(fmt.Sprintf("deployed! follow the run with 'trellis runs %s'", p.Name)))
		} else {
			fmt.Println(aurora.Green("deployed!"))
		}
	},
}

func init() {
	deployCmd.Flags().BoolVar(&publishFlag, "publish", false, "Publish the pipeline as a reusable endpoint after submission")
	deployCmd.Flags().BoolVar(&skipSubmitFlag, "skip-submit", false, "Validate and provision without starting a run")
	deployCmd.Flags().BoolP("help", "h", false, "Print this help message")
	RootCmd.AddCommand(deployCmd)
}
