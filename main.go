package main

import (
	"os"

	"github.com/EuroPOND/bayes-mtl-traj/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
