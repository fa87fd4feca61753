package main

import (
	"os"

	"github.com/treykane/cli-mindmap/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
