package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trellisml/trellis/pkg/api"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/util"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Runs - lists the submitted runs of a pipeline",
	Example: `
trellis runs attrition
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pipelineName := args[0]

		v := viper.New()
		runtimeConfig, err := config.LoadRuntimeConfiguration(v, config.AppPath())
		if err != nil {
			cmd.Println("failed to load runtime configuration")
			return
		}

		serverBaseUrl := runtimeConfig.ServerBaseUrl()

		err = util.IsRuntimeServerHealthy(serverBaseUrl, http.DefaultClient)
		if err != nil {
			cmd.Printf("failed to reach %s. is the trellis daemon running?\n", serverBaseUrl)
			return
		}

		runsUrl := fmt.Sprintf("%s/api/v0.1/pipelines/%s/runs", serverBaseUrl, pipelineName)

		response, err := http.DefaultClient.Get(runsUrl)
		if err != nil {
			cmd.Printf("failed to get runs for pipeline '%s': %s\n", pipelineName, err.Error())
			return
		}
		defer response.Body.Close()

		if response.StatusCode == 404 {
			cmd.Printf("the pipeline '%s' is not loaded in the daemon\n", pipelineName)
			return
		}

		if response.StatusCode != 200 {
			cmd.Printf("failed to get runs for pipeline '%s': %s\n", pipelineName, response.Status)
			return
		}

		body, err := ioutil.ReadAll(response.Body)
		if err != nil {
			cmd.Printf("failed to get runs for pipeline '%s': %s\n", pipelineName, err.Error())
			return
		}

		runs := make([]*api.Run, 0)
		err = json.Unmarshal(body, &runs)
		if err != nil {
			cmd.Printf("failed to get runs for pipeline '%s': %s\n", pipelineName, err.Error())
			return
		}

		if len(runs) == 0 {
			cmd.Printf("no runs submitted for pipeline '%s'\n", pipelineName)
			return
		}

		err = util.MarshalAndPrintTable(cmd.OutOrStdout(), runs)
		if err != nil {
			cmd.Printf("failed to get runs for pipeline '%s': %s\n", pipelineName, err.Error())
			return
		}
	},
}

func init() {
	runsCmd.Flags().BoolP("help", "h", false, "Print this help message")
	RootCmd.AddCommand(runsCmd)
}
