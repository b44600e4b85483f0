package cmd

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate Pipeline - checks a pipeline manifest and prints its plan",
	Example: `
trellis validate attrition
trellis validate .trellis/pipelines/attrition.yaml
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, _, err := GetPipelineAndConfiguration(args[0])
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		err = p.Validate()
		if err != nil {
			fmt.Println(aurora.Red(err.Error()))
			os.Exit(1)
		}

		fmt.Println(aurora.Green(fmt.Sprintf("%s is valid", p.Name)))
		fmt.Println()
		fmt.Print(p.Plan())
	},
}

func init() {
	validateCmd.Flags().BoolP("help", "h", false, "Print this help message")
	RootCmd.AddCommand(validateCmd)
}
