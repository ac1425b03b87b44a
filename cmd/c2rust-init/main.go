package main

import (
	"os"

	"github.com/c2rust/c2rust-init/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitFailure)
	}
}
