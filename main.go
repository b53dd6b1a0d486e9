package main

import (
	"fmt"
	"os"

	"contribution-engine/internal/cli"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.NewApp(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
