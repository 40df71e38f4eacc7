package main

import (
	"os"

	"github.com/uniQuk/mcpEntra/internal/cli"
)

func main() {
	os.Exit(cli.Report(os.Stderr, cli.Execute()))
}
