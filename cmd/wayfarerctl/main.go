// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package main is the entry point for wayfarerctl, the operator CLI.
//
// Usage:
//
//	wayfarerctl [flags] <command> [subcommand] [args]
//
// Commands:
//
//	recommend          - Rank places for a user offline, using the server configuration
//	artifact inspect   - Show metadata for an artifact file or a stored artifact
//	artifact import    - Copy an artifact file into the BadgerDB store
//	artifact convert   - Re-encode an artifact file (gob, json, msgpack)
//	artifact list      - List artifacts in the BadgerDB store
//	artifact delete    - Remove an artifact from the BadgerDB store
package main

import (
	"fmt"
	"os"

	"github.com/tomtom215/wayfarer/cmd/wayfarerctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
