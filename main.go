// Package main is the entry point for the potlint CLI.
package main

import "potlint/cmd"

func main() {
	cmd.Execute()
}
