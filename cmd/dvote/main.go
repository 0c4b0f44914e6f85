package main

import (
	"os"

	"dvotenative/cmd/dvote/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
