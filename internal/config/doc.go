// Package config provides centralized configuration management for the
// analysis pipeline. It handles loading configuration from the environment
// and an optional YAML file, and is the single source of truth for every
// filesystem path the pipeline reads from or writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. config.yaml next to the working directory (if present)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ADULT_* for namespacing:
//
//	ADULT_PATHS_BASE_DIR=/srv/adult-analysis
//	ADULT_PATHS_RESULTS_DIR=results
//	ADULT_LOGGING_LEVEL=info
//	ADULT_LOGGING_OUTPUT=both
//
// # Paths
//
// The Paths struct resolves the raw, processed, results, docs and logs
// directories against the base directory and exposes EnsureDirectories,
// an idempotent MkdirAll over all of them. No other package is allowed
// to invent paths on its own.
package config
