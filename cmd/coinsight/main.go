package main

import (
	"os"

	"github.com/luowen/coinsight/cmd/coinsight/commands"
)

// main is the entry point for the coinsight CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
