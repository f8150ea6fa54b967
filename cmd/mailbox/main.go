package main

import (
	"os"

	"mailbox/cmd/mailbox/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
