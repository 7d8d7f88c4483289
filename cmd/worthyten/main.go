// Package main is the entry point for the worthyten server.
package main

import (
	"os"

	"github.com/donaldgifford/worthyten/cmd/worthyten/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
