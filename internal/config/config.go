package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Input    InputConfig    `toml:"input"`
	Chunking ChunkingConfig `toml:"chunking"`
	Redact   RedactConfig   `toml:"redact"`
	Store    StoreConfig    `toml:"store"`
	Observer ObserverConfig `toml:"observer"`
}

type InputConfig struct {
	Dir string `toml:"dir"`
}

type ChunkingConfig struct {
	MaxSize    int      `toml:"max_size"`
	Overlap    int      `toml:"overlap"`
	Separators []string `toml:"separators"`
	Workers    int      `toml:"workers"`
}

type RedactConfig struct {
	Enabled bool `toml:"enabled"`
}

type StoreConfig struct {
	// Backend is "fsjson", "sqlite", or "postgres".
	Backend string `toml:"backend"`
	// Path is the output directory (fsjson) or database file (sqlite).
	Path string `toml:"path"`
	// URL is the connection string for postgres.
	URL string `toml:"url"`
}

type ObserverConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Input: InputConfig{Dir: "."},
		Chunking: ChunkingConfig{
			MaxSize:    490,
			Overlap:    88,
			Separators: []string{"\n\n\n", "\n\n", "\n", " ", ""},
			Workers:    4,
		},
		Store: StoreConfig{Backend: "fsjson", Path: "chunks"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = "shard.toml"
	}

	if data, err := os.ReadFile(path); err == nil {
		_ = toml.Unmarshal(data, &cfg)
	}

	// Env overrides
	if v := os.Getenv("SHARD_INPUT_DIR"); v != "" {
		cfg.Input.Dir = v
	}
	if v := os.Getenv("SHARD_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chunking.MaxSize = n
		}
	}
	if v := os.Getenv("SHARD_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chunking.Overlap = n
		}
	}
	if v := os.Getenv("SHARD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chunking.Workers = n
		}
	}
	if v := os.Getenv("SHARD_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("SHARD_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("SHARD_STORE_URL"); v != "" {
		cfg.Store.URL = v
	}
	if os.Getenv("SHARD_REDACT") == "true" || os.Getenv("SHARD_REDACT") == "1" {
		cfg.Redact.Enabled = true
	}
	if os.Getenv("SHARD_OBSERVER_ENABLED") == "true" || os.Getenv("SHARD_OBSERVER_ENABLED") == "1" {
		cfg.Observer.Enabled = true
	}

	return cfg
}
