package main

import (
	"os"

	"github.com/sofmeright/mdsplice/src/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
