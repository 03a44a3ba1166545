// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Validate checks that configuration values are well-formed and mutually consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	files := map[string]string{
		"DATA_USERS_FILE":      c.Data.UsersFile,
		"DATA_PLACES_FILE":     c.Data.PlacesFile,
		"DATA_USER_PLACE_FILE": c.Data.UserPlaceFile,
		"DATA_COMMENTS_FILE":   c.Data.CommentsFile,
	}
	for name, value := range files {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("DATA_RELOAD_INTERVAL must not be negative")
	}
	return nil
}

// validUserKeyFields and validItemKeyFields list the table columns an
// artifact may be keyed by.
var (
	validUserKeyFields = map[string]bool{"user_name": true, "user_id": true}
	validItemKeyFields = map[string]bool{"place_name": true, "place_id": true}
)

func (c *Config) validateRecommend() error {
	r := c.Recommend

	if _, err := recommend.ParseModelKind(r.DefaultKind); err != nil {
		return fmt.Errorf("RECOMMEND_DEFAULT_KIND: %w", err)
	}
	if r.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least 1")
	}
	if r.DefaultK < 1 || r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be between 1 and RECOMMEND_MAX_K (%d)", r.MaxK)
	}
	if _, err := recommend.ParseColdStartPolicy(r.ColdStart); err != nil {
		return fmt.Errorf("RECOMMEND_COLD_START: %w", err)
	}
	if !validUserKeyFields[r.UserKeyField] {
		return fmt.Errorf("RECOMMEND_USER_KEY_FIELD must be one of: user_name, user_id")
	}
	if !validItemKeyFields[r.ItemKeyField] {
		return fmt.Errorf("RECOMMEND_ITEM_KEY_FIELD must be one of: place_name, place_id")
	}
	for _, kind := range r.Preload {
		if _, err := recommend.ParseModelKind(kind); err != nil {
			return fmt.Errorf("RECOMMEND_PRELOAD: %w", err)
		}
	}
	if len(r.Preload) > 0 && r.PreloadTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_PRELOAD_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	switch c.Artifacts.Store {
	case ArtifactStoreFile:
		return nil
	case ArtifactStoreBadger:
		if c.Artifacts.BadgerPath == "" {
			return fmt.Errorf("ARTIFACT_BADGER_PATH is required when ARTIFACT_STORE=badger")
		}
		return nil
	default:
		return fmt.Errorf("ARTIFACT_STORE must be one of: file, badger")
	}
}

func (c *Config) validateSecurity() error {
	for _, origin := range c.Security.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("CORS_ORIGINS must not contain empty entries")
		}
	}
	return c.validateRateLimits()
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
