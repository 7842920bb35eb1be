package main

import (
	"os"

	"github.com/strataview/strata/cmd/strata/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
