package main

import (
	"os"

	"plume/cmd/plume/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
