package main

import (
	"os"

	"github.com/agenthands/forthsyntax/cmd/forthparse/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
