// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Config holds all application configuration.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: cfg.Server.Addr()}
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds DuckDB settings. An empty Path opens an in-memory database.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default
}

// DataConfig locates the CSV tables and the summary text.
// Relative file names are resolved against Dir.
type DataConfig struct {
	Dir           string `koanf:"dir"`
	UsersFile     string `koanf:"users_file"`
	PlacesFile    string `koanf:"places_file"`
	UserPlaceFile string `koanf:"user_place_file"`
	CommentsFile  string `koanf:"comments_file"`
	SummaryPath   string `koanf:"summary_path"`

	// ReloadInterval re-imports the tables periodically. Zero disables it.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// Path resolves name against Dir unless it is already absolute.
func (d DataConfig) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// RecommendConfig holds recommendation serving settings.
type RecommendConfig struct {
	// DefaultKind is used when a request names no model kind.
	DefaultKind string `koanf:"default_kind"`

	// DefaultK is the result size when a request names none.
	DefaultK int `koanf:"default_k"`

	// MaxK caps the result size a caller may request.
	MaxK int `koanf:"max_k"`

	// ColdStart is the policy for users missing from an artifact:
	// popularity or empty.
	ColdStart string `koanf:"cold_start"`

	// UserKeyField and ItemKeyField name the table columns whose values
	// match the artifact's user and item keys.
	UserKeyField string `koanf:"user_key_field"`
	ItemKeyField string `koanf:"item_key_field"`

	// Preload lists kinds loaded at startup. Failures are logged only.
	Preload        []string      `koanf:"preload"`
	PreloadTimeout time.Duration `koanf:"preload_timeout"`

	// LoadTimeout bounds one artifact read shared by concurrent requests.
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// DefaultModelKind parses DefaultKind. Validate guarantees it succeeds.
func (r RecommendConfig) DefaultModelKind() recommend.ModelKind {
	kind, err := recommend.ParseModelKind(r.DefaultKind)
	if err != nil {
		return recommend.KindNFM
	}
	return kind
}

// PreloadKinds parses Preload, skipping entries Validate would reject.
func (r RecommendConfig) PreloadKinds() []recommend.ModelKind {
	kinds := make([]recommend.ModelKind, 0, len(r.Preload))
	for _, s := range r.Preload {
		if kind, err := recommend.ParseModelKind(s); err == nil {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// ColdStartPolicy parses ColdStart. Validate guarantees it succeeds.
func (r RecommendConfig) ColdStartPolicy() recommend.ColdStartPolicy {
	policy, err := recommend.ParseColdStartPolicy(r.ColdStart)
	if err != nil {
		return recommend.ColdStartPopularity
	}
	return policy
}

// Artifact store backends
const (
	ArtifactStoreFile   = "file"
	ArtifactStoreBadger = "badger"
)

// ArtifactsConfig selects where embedding artifacts are read from.
type ArtifactsConfig struct {
	// Store is "file" (one file per kind) or "badger" (imported blobs).
	Store string `koanf:"store"`

	NFMPath string `koanf:"nfm_path"`
	LGNPath string `koanf:"lgn_path"`

	// BadgerPath is the BadgerDB directory (required when store=badger).
	BadgerPath string `koanf:"badger_path"`
}

// Paths returns the per-kind file paths for the file store.
func (a ArtifactsConfig) Paths() map[recommend.ModelKind]string {
	return map[recommend.ModelKind]string{
		recommend.KindNFM: a.NFMPath,
		recommend.KindLGN: a.LGNPath,
	}
}

// SecurityConfig holds CORS, rate limiting and authorization settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AuthzPolicyPath is an optional Casbin CSV policy replacing the built-in one.
	AuthzPolicyPath string `koanf:"authz_policy_path"`
}

// LoggingConfig holds logging settings for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes file:line in log entries.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file, and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
