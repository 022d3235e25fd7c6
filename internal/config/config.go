// Package config handles application settings loaded from
// environment variables (populated by the .env file in main).
package config

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// Config holds all configuration for a pipeline run.
type Config struct {
	// InputPath is the semicolon-delimited candidates file.
	InputPath string
	// WarehousePath is the SQLite warehouse database file.
	WarehousePath string
	// Delimiter is the input field separator. Fixed contract, not
	// auto-detected.
	Delimiter rune
	// ExportDir receives the per-table CSV dumps of the export
	// command.
	ExportDir string
}

// LoadConfig reads settings from environment variables, falling back
// to defaults matching the reference dataset layout.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		InputPath:     envOr("RDW_INPUT_PATH", "data/raw/candidates.csv"),
		WarehousePath: envOr("RDW_WAREHOUSE_PATH", "data/processed/recruitment_dw.db"),
		Delimiter:     ';',
		ExportDir:     envOr("RDW_EXPORT_DIR", "data/processed/export"),
	}

	if d := os.Getenv("RDW_DELIMITER"); d != "" {
		if utf8.RuneCountInString(d) != 1 {
			return nil, fmt.Errorf("RDW_DELIMITER must be a single character, got %q", d)
		}
		cfg.Delimiter, _ = utf8.DecodeRuneInString(d)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
