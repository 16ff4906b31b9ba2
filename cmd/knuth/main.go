package main

import (
	"os"

	"github.com/msto63/knuth/cmd/knuth/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
