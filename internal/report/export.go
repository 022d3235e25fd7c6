package report

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WarehouseTables lists the persisted tables in load order.
var WarehouseTables = []string{
	"dim_candidate",
	"dim_date",
	"dim_country",
	"dim_seniority",
	"dim_technology",
	"fact_applications",
}

// ExportCSV dumps every warehouse table to <dir>/<table>.csv with a
// header row, for consumption by BI tools. The directory is created
// if absent.
func ExportCSV(ctx context.Context, db *sql.DB, dir string, log *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	for _, table := range WarehouseTables {
		path := filepath.Join(dir, table+".csv")
		n, err := exportTable(ctx, db, table, path)
		if err != nil {
			return err
		}
		log.Info("table exported", "table", table, "rows", n, "path", path)
	}
	return nil
}

func exportTable(ctx context.Context, db *sql.DB, table, path string) (int, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return 0, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return 0, err
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	count := 0
	record := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return 0, fmt.Errorf("failed to scan row from %s: %w", table, err)
		}
		for i, v := range values {
			switch val := v.(type) {
			case nil:
				record[i] = ""
			case []byte:
				record[i] = string(val)
			default:
				record[i] = fmt.Sprint(val)
			}
		}
		if err := w.Write(record); err != nil {
			return 0, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return count, nil
}
