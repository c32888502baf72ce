package main

import (
	"os"

	"splc/cmd/splc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
