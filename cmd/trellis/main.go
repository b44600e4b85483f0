package main

import (
	"github.com/trellisml/trellis/pkg/cli/cmd"
	"github.com/trellisml/trellis/pkg/version"
)

func main() {
	version.SetComponent("trellis")
	cmd.Execute()
}
