// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package main is the entry point for the Wayfarer server.

Wayfarer serves a catalog of travel places, the users who visited them and
their comments, all imported from CSV into DuckDB, and ranks unvisited places
for a user with pre-trained embedding models (NFM and LGN).

# Application Architecture

	RootSupervisor ("wayfarer")
	├── DataSupervisor ("data-layer")
	│   ├── artifact-warmup (runs once)
	│   └── data-reload (when DATA_RELOAD_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── http-server

Startup order:

 1. Configuration (Koanf v2: defaults, config.yaml, environment)
 2. Logging (zerolog)
 3. Database: DuckDB with the CSV tables imported
 4. Artifact source (file or BadgerDB) and the in-memory artifact store
 5. Authorization policy (Casbin)
 6. Supervisor tree and HTTP server

# Configuration

Common environment variables:

	HTTP_PORT=8000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	DATA_DIR=data                # user.csv, place.csv, user_place.csv, comment.csv
	DATA_RELOAD_INTERVAL=0       # e.g. 15m; 0 disables periodic reload

	RECOMMEND_DEFAULT_KIND=NFM
	RECOMMEND_DEFAULT_K=5
	RECOMMEND_COLD_START=popularity
	RECOMMEND_PRELOAD=NFM,LGN

	ARTIFACT_STORE=file          # file or badger
	ARTIFACT_NFM_PATH=data/models/nfm.gob.gz
	ARTIFACT_LGN_PATH=data/models/lgn.gob.gz
	ARTIFACT_BADGER_PATH=data/artifacts

	AUTHZ_POLICY_PATH=           # empty uses the built-in policy

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor tree stops the
HTTP server gracefully, then the database and artifact store are closed.

Use wayfarerctl to import artifacts into BadgerDB or convert between formats.
*/
package main
