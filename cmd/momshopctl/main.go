package main

import (
	"os"

	"github.com/VS237/momshop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
