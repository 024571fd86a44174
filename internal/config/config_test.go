package config

import (
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Walks", cfg.Walks, 0},
		{"Steps", cfg.Steps, -1},
		{"Iterations", cfg.Iterations, 0},
		{"TopK", cfg.TopK, 20},
		{"Workers", cfg.Workers, 1},
		{"Seed", cfg.Seed, int64(0)},
		{"Diameter", cfg.Diameter, 3},
		{"ProfilesPath", cfg.ProfilesPath, "profiles.toml"},
		{"HistoryDB", cfg.HistoryDB, ".linkrank/history.db"},
		{"TelemetryDir", cfg.TelemetryDir, ".linkrank/telemetry"},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	resetViper()

	viper.Set("walks", 500)
	viper.Set("top_k", 5)
	viper.Set("history_db", "/tmp/custom.db")
	defer resetViper()

	cfg := Load()
	if cfg.Walks != 500 {
		t.Errorf("Walks = %d, want 500", cfg.Walks)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.HistoryDB != "/tmp/custom.db" {
		t.Errorf("HistoryDB = %q, want /tmp/custom.db", cfg.HistoryDB)
	}
}
