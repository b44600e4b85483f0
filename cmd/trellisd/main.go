package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trellisml/trellis/pkg/constants"
	"github.com/trellisml/trellis/pkg/runtime"
	"github.com/trellisml/trellis/pkg/version"
)

func main() {
	version.SetComponent(constants.TrellisDaemonFilename)

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

var RootCmd = &cobra.Command{
	Use:   "trellisd",
	Short: "Trellis Daemon",
	Run: func(cmd *cobra.Command, args []string) {
		trellisRuntime := runtime.GetTrellisRuntime()

		err := trellisRuntime.BindFlags(cmd.Flags().Lookup("development"))
		if err != nil {
			log.Fatalln(err)
		}

		err = trellisRuntime.Run()
		if err != nil {
			log.Fatalln(err)
		}
		defer trellisRuntime.Shutdown()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, os.Interrupt)
		<-stop
	},
}

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version())
	},
}

func init() {
	RootCmd.Flags().Bool("development", false, "Watch the pipelines directory and reload manifests on change")
	RootCmd.AddCommand(VersionCmd)
}
