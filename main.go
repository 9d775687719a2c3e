package main

import "github.com/raylib-tools/rpc/cmd"

// main is the entry point of the rpc CLI application.
// It executes the root command which handles argument parsing and subcommand dispatch.
func main() {
	cmd.Execute()
}
