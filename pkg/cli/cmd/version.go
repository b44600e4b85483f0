package cmd

import (
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trellisml/trellis/pkg/config"
	"github.com/trellisml/trellis/pkg/github"
	"github.com/trellisml/trellis/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Trellis CLI version",
	Example: `
trellis version
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("CLI version:    %s\n", version.Version())

		v := viper.New()
		runtimeConfig, err := config.LoadRuntimeConfiguration(v, config.AppPath())
		if err != nil {
			return
		}

		daemonVersion := "not running"
		versionUrl := fmt.Sprintf("%s/version", runtimeConfig.ServerBaseUrl())
		response, err := http.DefaultClient.Get(versionUrl)
		if err == nil && response.StatusCode == 200 {
			body, err := ioutil.ReadAll(response.Body)
			if err == nil {
				daemonVersion = string(body)
			}
			response.Body.Close()
		}

		fmt.Printf("Daemon version: %s\n", daemonVersion)

		github.CheckForLatestVersion()
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
