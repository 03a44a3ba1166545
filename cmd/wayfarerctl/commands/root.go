// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package commands implements the wayfarerctl command tree.
package commands

import (
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/wayfarer/internal/logging"
)

// Execute runs the root command with process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree. Each call has its own flag state.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "wayfarerctl",
		Short: "Operator tool for the Wayfarer recommendation server",
		Long: `wayfarerctl - manage embedding artifacts and run offline recommendations.

Configuration is read the same way as the server: defaults, then
config.yaml (or $CONFIG_PATH), then environment variables.

Examples:
  # Import an artifact file into BadgerDB
  wayfarerctl artifact import data/models/nfm.gob.gz --kind NFM --badger data/artifacts

  # Convert a JSON export to the compact gob format
  wayfarerctl artifact convert lgn.json lgn.gob.gz

  # Recommend 10 places for a user with LGN
  wayfarerctl recommend --user linh --kind LGN -k 10`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logging.Init(logging.Config{
				Level:  level,
				Format: "console",
				Output: os.Stderr,
			})
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newArtifactCmd())
	root.AddCommand(newRecommendCmd())
	return root
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
