// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/recommend/storage"
)

func newArtifactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Inspect, import and convert embedding artifacts",
	}
	cmd.AddCommand(
		newArtifactInspectCmd(),
		newArtifactImportCmd(),
		newArtifactConvertCmd(),
		newArtifactListCmd(),
		newArtifactDeleteCmd(),
	)
	return cmd
}

// withBadger opens the store at path for the duration of fn.
func withBadger(path string, fn func(*storage.BadgerSource) error) error {
	if path == "" {
		return fmt.Errorf("--badger is required")
	}
	db, err := storage.OpenBadger(path)
	if err != nil {
		return err
	}
	runErr := fn(storage.NewBadgerSource(db))
	if err := db.Close(); err != nil && runErr == nil {
		return fmt.Errorf("close badger db: %w", err)
	}
	return runErr
}

func newArtifactInspectCmd() *cobra.Command {
	var (
		badgerPath string
		kind       string
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Validate an artifact and print its metadata",
		Long: `Decode an artifact and print its metadata as JSON.

With a file argument the format is inferred from the extension
(.gob.gz, .json, .msgpack). With --badger and --kind the stored
artifact is decoded instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				_, meta, err := storage.ReadFile(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), meta)
			}

			k, err := recommend.ParseModelKind(kind)
			if err != nil {
				return err
			}
			return withBadger(badgerPath, func(src *storage.BadgerSource) error {
				a, err := src.Open(cmd.Context(), k)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), storage.Metadata{
					Kind:  k,
					Users: a.UserCount(),
					Items: a.ItemCount(),
					Dim:   a.Dim(),
				})
			})
		},
	}

	cmd.Flags().StringVar(&badgerPath, "badger", "", "BadgerDB directory")
	cmd.Flags().StringVar(&kind, "kind", "", "model kind (NFM or LGN)")
	return cmd
}

func newArtifactImportCmd() *cobra.Command {
	var (
		badgerPath string
		kind       string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store an artifact file in BadgerDB under a model kind",
		Long: `Validate an artifact file and store it in BadgerDB, replacing any
previous artifact for the same kind. The blob is stored unchanged.

Running servers keep their cached copy until it is invalidated with
POST /api/v1/admin/artifacts/{kind}/invalidate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := recommend.ParseModelKind(kind)
			if err != nil {
				return err
			}

			f, err := resolveFormat(format, args[0])
			if err != nil {
				return err
			}

			blob, err := os.ReadFile(args[0]) //nolint:gosec // path is operator input
			if err != nil {
				return fmt.Errorf("read artifact: %w", err)
			}

			return withBadger(badgerPath, func(src *storage.BadgerSource) error {
				meta, err := src.Put(cmd.Context(), k, f, blob)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), meta)
			})
		},
	}

	cmd.Flags().StringVar(&badgerPath, "badger", "", "BadgerDB directory")
	cmd.Flags().StringVar(&kind, "kind", "", "model kind (NFM or LGN)")
	cmd.Flags().StringVar(&format, "format", "", "input format; inferred from the extension when empty")
	_ = cmd.MarkFlagRequired("kind") //nolint:errcheck // flag is defined above
	return cmd
}

func newArtifactConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode an artifact; formats follow the file extensions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := storage.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := storage.WriteFile(args[1], a); err != nil {
				return err
			}
			_, meta, err := storage.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("verify converted artifact: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), meta)
		},
	}
}

func newArtifactListCmd() *cobra.Command {
	var badgerPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artifacts stored in BadgerDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBadger(badgerPath, func(src *storage.BadgerSource) error {
				metas, err := src.List(cmd.Context())
				if err != nil {
					return err
				}
				if metas == nil {
					metas = []storage.Metadata{}
				}
				return printJSON(cmd.OutOrStdout(), metas)
			})
		},
	}

	cmd.Flags().StringVar(&badgerPath, "badger", "", "BadgerDB directory")
	return cmd
}

func newArtifactDeleteCmd() *cobra.Command {
	var badgerPath string

	cmd := &cobra.Command{
		Use:   "delete <kind>",
		Short: "Remove a stored artifact from BadgerDB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := recommend.ParseModelKind(args[0])
			if err != nil {
				return err
			}
			return withBadger(badgerPath, func(src *storage.BadgerSource) error {
				if err := src.Delete(cmd.Context(), k); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", k)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&badgerPath, "badger", "", "BadgerDB directory")
	return cmd
}

func resolveFormat(flag, path string) (storage.Format, error) {
	if flag != "" {
		return storage.ParseFormat(flag)
	}
	return storage.FormatFromPath(path)
}
