package main

import (
	"os"

	"github.com/rustyeddy/gapscan/cmd/gapscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
