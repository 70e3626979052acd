package main

import (
	"os"

	"github.com/deusflow/campusnews/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
