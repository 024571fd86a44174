// Package config loads runtime configuration for linkrank from viper,
// layering built-in defaults under .linkrank.yaml, LINKRANK_* environment
// variables, and CLI flags.
package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for a linkrank invocation.
//
// Walks and Iterations default to 0 meaning "derive from the graph":
// walks = n², iterations = 2×diameter, with the diameter taken from the
// Diameter setting. Steps uses -1 as its "derive" sentinel (2×diameter)
// because zero-step walks are a meaningful request in their own right.
type Config struct {
	Walks        int    `mapstructure:"walks"`
	Steps        int    `mapstructure:"steps"`
	Iterations   int    `mapstructure:"iterations"`
	TopK         int    `mapstructure:"top_k"`
	Workers      int    `mapstructure:"workers"`
	Seed         int64  `mapstructure:"seed"`
	Diameter     int    `mapstructure:"diameter"`
	ProfilesPath string `mapstructure:"profiles_path"`
	HistoryDB    string `mapstructure:"history_db"`
	TelemetryDir string `mapstructure:"telemetry_dir"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("walks", 0)
	viper.SetDefault("steps", -1)
	viper.SetDefault("iterations", 0)
	viper.SetDefault("top_k", 20)
	viper.SetDefault("workers", 1)
	viper.SetDefault("seed", 0)
	viper.SetDefault("diameter", 3)
	viper.SetDefault("profiles_path", "profiles.toml")
	viper.SetDefault("history_db", ".linkrank/history.db")
	viper.SetDefault("telemetry_dir", ".linkrank/telemetry")
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
