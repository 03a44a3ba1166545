// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/database"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/recommend/storage"
)

func newRecommendCmd() *cobra.Command {
	var (
		user string
		kind string
		k    int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank unvisited places for a user without a running server",
		Long: `Import the CSV tables, load the artifact for --kind and print the
ranked result as JSON.

--user is a key in the configured user key space (RECOMMEND_USER_KEY_FIELD,
user_name by default). Users unknown to the artifact get the configured
cold-start policy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(user) == "" {
				return fmt.Errorf("--user is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			modelKind := cfg.Recommend.DefaultModelKind()
			if kind != "" {
				if modelKind, err = recommend.ParseModelKind(kind); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("k") {
				k = cfg.Recommend.DefaultK
			}
			if k < 0 || k > cfg.Recommend.MaxK {
				return fmt.Errorf("-k must be between 0 and %d", cfg.Recommend.MaxK)
			}

			ctx := cmd.Context()
			db, err := database.New(ctx, &cfg.Database, cfg.Data, logging.WithComponent("database"))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }() //nolint:errcheck // read-only session

			interactions, err := database.NewInteractions(db, cfg.Recommend.UserKeyField, cfg.Recommend.ItemKeyField)
			if err != nil {
				return err
			}

			source, closer, err := storage.OpenConfigured(cfg.Artifacts)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }() //nolint:errcheck // read-only session

			recommender := recommend.NewRecommender(
				recommend.NewStore(source, logging.WithComponent("artifacts")),
				interactions,
				logging.WithComponent("recommend"),
				recommend.WithColdStartPolicy(cfg.Recommend.ColdStartPolicy()),
			)

			result, err := recommender.Recommend(ctx, strings.TrimSpace(user), modelKind, k)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user key to recommend for")
	cmd.Flags().StringVar(&kind, "kind", "", "model kind (NFM or LGN); defaults to RECOMMEND_DEFAULT_KIND")
	cmd.Flags().IntVarP(&k, "k", "k", 0, "number of places; defaults to RECOMMEND_DEFAULT_K")
	return cmd
}
