package main

import (
	"os"

	"github.com/budgie-dev/budgie/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
