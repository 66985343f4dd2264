// Package main provides the journal CLI.
package main

import "github.com/mesh-intelligence/journal/internal/cli"

func main() {
	cli.Execute()
}
