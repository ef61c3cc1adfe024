// Package main is the entry point for the packplan CLI.
package main

import (
	"github.com/atlantispak/packplan/cmd/packplan/commands"
)

// main delegates execution to the root command handler.
func main() {
	commands.Execute()
}
