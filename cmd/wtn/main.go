// Package main is the entry point for the wtn CLI.
package main

import "github.com/donaldgifford/worthyten/cmd/wtn/cmd"

func main() {
	cmd.Execute()
}
