package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		// Isolate from whatever the invoking shell has set.
		for _, key := range []string{"RDW_INPUT_PATH", "RDW_WAREHOUSE_PATH", "RDW_DELIMITER", "RDW_EXPORT_DIR"} {
			t.Setenv(key, "")
		}

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "data/raw/candidates.csv", cfg.InputPath)
		require.Equal(t, "data/processed/recruitment_dw.db", cfg.WarehousePath)
		require.Equal(t, ';', cfg.Delimiter)
		require.Equal(t, "data/processed/export", cfg.ExportDir)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("RDW_INPUT_PATH", "/tmp/in.csv")
		t.Setenv("RDW_WAREHOUSE_PATH", "/tmp/dw.db")
		t.Setenv("RDW_DELIMITER", ",")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "/tmp/in.csv", cfg.InputPath)
		require.Equal(t, "/tmp/dw.db", cfg.WarehousePath)
		require.Equal(t, ',', cfg.Delimiter)
	})

	t.Run("multi-character delimiter rejected", func(t *testing.T) {
		t.Setenv("RDW_DELIMITER", ";;")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}
