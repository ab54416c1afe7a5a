package main

import (
	"os"

	"procure-ai/client/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
