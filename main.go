package main

import "github.com/xll-gen/finch/cmd"

// main is the entry point of the finch CLI application.
// It executes the root command which handles argument parsing and generation.
func main() {
	cmd.Execute()
}
