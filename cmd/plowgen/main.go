package main

import (
	"os"

	"github.com/BonHowi/plowgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
