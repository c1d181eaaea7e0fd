package main

import (
	"os"

	"github.com/jakoblorz/stackinit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// cobra already printed the error (SilenceUsage keeps it terse)
		os.Exit(1)
	}
}
