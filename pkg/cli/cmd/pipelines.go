package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trellisml/trellis/pkg/api"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/util"
)

var pipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "Retrieve pipelines",
	Example: `
trellis pipelines list
`,
}

var pipelinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists currently loaded pipelines from the daemon",
	Example: `
trellis pipelines list
`,
	Run: func(cmd *cobra.Command, args []string) {
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

		listUrl := fmt.Sprintf("%s/api/v0.1/pipelines", serverBaseUrl)

		response, err := http.DefaultClient.Get(listUrl)
		if err != nil {
			cmd.Printf("failed to get currently loaded pipelines from daemon: %s\n", err.Error())
			return
		}
		defer response.Body.Close()

		if response.StatusCode != 200 {
			cmd.Printf("failed to get currently loaded pipelines from daemon: %s\n", response.Status)
			return
		}

		body, err := ioutil.ReadAll(response.Body)
		if err != nil {
			cmd.Printf("failed to get currently loaded pipelines from daemon: %s\n", err.Error())
			return
		}

		pipelines := make([]*api.Pipeline, 0)
		err = json.Unmarshal(body, &pipelines)
		if err != nil {
			cmd.Printf("failed to get currently loaded pipelines from daemon: %s\n", err.Error())
			return
		}

		sort.SliceStable(pipelines, func(i, j int) bool {
			return strings.Compare(pipelines[i].Name, pipelines[j].Name) == -1
		})
		err = util.MarshalAndPrintTable(cmd.OutOrStdout(), pipelines)
		if err != nil {
			cmd.Printf("failed to get currently loaded pipelines from daemon: %s\n", err.Error())
			return
		}
	},
}

func init() {
	pipelinesCmd.AddCommand(pipelinesListCmd)
	pipelinesCmd.Flags().BoolP("help", "h", false, "Prints this help message")
	pipelinesListCmd.Flags().BoolP("help", "h", false, "Prints this help message")
	RootCmd.AddCommand(pipelinesCmd)
}
