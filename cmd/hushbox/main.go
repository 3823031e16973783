package main

import (
	"os"

	"github.com/hushbox/hushbox/cmd/hushbox/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
