package report

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	db, star := seedWarehouse(t)
	dir := filepath.Join(t.TempDir(), "export")

	require.NoError(t, ExportCSV(context.Background(), db, dir, testLogger()))

	t.Run("one file per table", func(t *testing.T) {
		for _, table := range WarehouseTables {
			_, err := os.Stat(filepath.Join(dir, table+".csv"))
			require.NoError(t, err, table)
		}
	})

	t.Run("fact export carries header plus one line per fact", func(t *testing.T) {
		f, err := os.Open(filepath.Join(dir, "fact_applications.csv"))
		require.NoError(t, err)
		defer f.Close()

		lines, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, lines, len(star.Facts)+1)
		require.Equal(t, []string{
			"application_id", "candidate_key", "date_key", "country_key", "seniority_key",
			"technology_key", "code_challenge_score", "technical_interview_score", "is_hired",
		}, lines[0])
	})

	t.Run("dimension export round-trips values", func(t *testing.T) {
		f, err := os.Open(filepath.Join(dir, "dim_country.csv"))
		require.NoError(t, err)
		defer f.Close()

		lines, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, lines, len(star.Countries)+1)
		require.Equal(t, []string{"1", "Brazil"}, lines[1])
	})
}
