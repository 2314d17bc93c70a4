package main

import (
	"os"

	"github.com/littletheworld/LyrPro/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
