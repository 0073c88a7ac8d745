// Package config loads the server's optional JSONC configuration file
// (SPEC_FULL.md §10.4), following the precedence the teacher repo's own
// root config.go establishes: built-in defaults, then the config file if
// one is given, then CLI flags (applied by the caller after Load
// returns).
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config holds the server settings cmd/kvshmd resolves from defaults, an
// optional config file, and CLI flags.
type Config struct {
	BucketCount int    `json:"bucket_count,omitempty"`
	WorkerCount int    `json:"worker_count,omitempty"`
	SegmentName string `json:"segment_name,omitempty"`
}

// Default returns the built-in defaults from spec.md §5 (bucket count and
// worker count both default to 10 and 4 respectively; "RequestQueue" is
// the original implementation's hardcoded segment name).
func Default() Config {
	return Config{
		BucketCount: 10,
		WorkerCount: 4,
		SegmentName: "RequestQueue",
	}
}

// Load reads an optional JSONC config file, overlaying any fields it sets
// onto the defaults. An empty path is not an error: it just returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var fromFile Config
	if err := json.Unmarshal(standardized, &fromFile); err != nil {
		return Config{}, fmt.Errorf("invalid config JSON in %s: %w", path, err)
	}

	if fromFile.BucketCount != 0 {
		cfg.BucketCount = fromFile.BucketCount
	}
	if fromFile.WorkerCount != 0 {
		cfg.WorkerCount = fromFile.WorkerCount
	}
	if fromFile.SegmentName != "" {
		cfg.SegmentName = fromFile.SegmentName
	}

	return cfg, nil
}
