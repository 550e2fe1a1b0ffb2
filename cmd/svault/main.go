package main

import (
	"os"

	"svault/cmd/svault/commands"
)

func main() {
	os.Exit(commands.Execute())
}
