// Package main provides the entry point for the sheetsync CLI tool.
package main

import (
	"github.com/agentstation/sheetsync/cmd/sheetsync/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
