package main

import (
	"os"

	"artguard/cmd/artguard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
