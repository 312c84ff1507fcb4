// Package main is the entry point for the omcbar CLI.
package main

import (
	"os"

	"github.com/oh-my-claude/menubar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
