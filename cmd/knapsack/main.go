package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/llm-d/llm-d-knapsack/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
