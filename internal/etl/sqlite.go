package etl

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/BartekS5/recruitment-dw/pkg/models"
)

// Table creation statements for the warehouse. Dimension tables
// first, then the fact table referencing them. A full reload
// replaces the warehouse, so there is no migration path here.
var createStatements = []string{
	`CREATE TABLE dim_candidate (
		candidate_key INTEGER PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email         TEXT NOT NULL
	)`,
	`CREATE TABLE dim_date (
		date_key  INTEGER PRIMARY KEY,
		full_date TEXT NOT NULL,
		year      INTEGER NOT NULL,
		month     INTEGER NOT NULL,
		quarter   INTEGER NOT NULL
	)`,
	`CREATE TABLE dim_country (
		country_key  INTEGER PRIMARY KEY,
		country_name TEXT NOT NULL
	)`,
	`CREATE TABLE dim_seniority (
		seniority_key   INTEGER PRIMARY KEY,
		seniority_level TEXT NOT NULL
	)`,
	`CREATE TABLE dim_technology (
		technology_key  INTEGER PRIMARY KEY,
		technology_name TEXT NOT NULL
	)`,
	`CREATE TABLE fact_applications (
		application_id            INTEGER PRIMARY KEY,
		candidate_key             INTEGER NOT NULL REFERENCES dim_candidate(candidate_key),
		date_key                  INTEGER NOT NULL REFERENCES dim_date(date_key),
		country_key               INTEGER NOT NULL REFERENCES dim_country(country_key),
		seniority_key             INTEGER NOT NULL REFERENCES dim_seniority(seniority_key),
		technology_key            INTEGER NOT NULL REFERENCES dim_technology(technology_key),
		code_challenge_score      INTEGER NOT NULL,
		technical_interview_score INTEGER NOT NULL,
		is_hired                  INTEGER NOT NULL
	)`,
}

// Drop order is the reverse of load order so the fact table never
// outlives the dimensions it references.
var dropOrder = []string{
	"fact_applications",
	"dim_technology",
	"dim_seniority",
	"dim_country",
	"dim_date",
	"dim_candidate",
}

// SQLiteLoader persists a transformed star schema into the SQLite
// warehouse. Each Load replaces the previous content entirely.
type SQLiteLoader struct {
	DB  *sql.DB
	Log *slog.Logger
}

func NewSQLiteLoader(db *sql.DB, log *slog.Logger) *SQLiteLoader {
	return &SQLiteLoader{DB: db, Log: log}
}

func (l *SQLiteLoader) Load(ctx context.Context, star *models.Star) error {
	if err := l.resetSchema(ctx); err != nil {
		return err
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback()

	// Dimensions before facts: an interrupted load can leave unused
	// dimension rows but never a dangling fact reference.
	if err := l.loadDimensions(ctx, tx, star); err != nil {
		return err
	}
	if err := l.loadFacts(ctx, tx, star.Facts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}

	return l.verifyCounts(ctx, star)
}

func (l *SQLiteLoader) resetSchema(ctx context.Context) error {
	for _, table := range dropOrder {
		if _, err := l.DB.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	for _, stmt := range createStatements {
		if _, err := l.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create warehouse schema: %w", err)
		}
	}
	l.Log.Debug("warehouse schema recreated", "tables", len(createStatements))
	return nil
}

func (l *SQLiteLoader) loadDimensions(ctx context.Context, tx *sql.Tx, star *models.Star) error {
	for _, c := range star.Candidates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dim_candidate (candidate_key, first_name, last_name, email) VALUES (?, ?, ?, ?)",
			c.Key, c.FirstName, c.LastName, c.Email); err != nil {
			return fmt.Errorf("failed to insert into dim_candidate: %w", err)
		}
	}
	for _, d := range star.Dates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dim_date (date_key, full_date, year, month, quarter) VALUES (?, ?, ?, ?, ?)",
			d.Key, d.FullDate, d.Year, d.Month, d.Quarter); err != nil {
			return fmt.Errorf("failed to insert into dim_date: %w", err)
		}
	}
	for _, c := range star.Countries {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dim_country (country_key, country_name) VALUES (?, ?)",
			c.Key, c.Name); err != nil {
			return fmt.Errorf("failed to insert into dim_country: %w", err)
		}
	}
	for _, s := range star.Seniorities {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dim_seniority (seniority_key, seniority_level) VALUES (?, ?)",
			s.Key, s.Level); err != nil {
			return fmt.Errorf("failed to insert into dim_seniority: %w", err)
		}
	}
	for _, t := range star.Technologies {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dim_technology (technology_key, technology_name) VALUES (?, ?)",
			t.Key, t.Name); err != nil {
			return fmt.Errorf("failed to insert into dim_technology: %w", err)
		}
	}
	return nil
}

func (l *SQLiteLoader) loadFacts(ctx context.Context, tx *sql.Tx, facts []models.Application) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO fact_applications
		(application_id, candidate_key, date_key, country_key, seniority_key, technology_key,
		 code_challenge_score, technical_interview_score, is_hired)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare fact insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range facts {
		hired := 0
		if f.IsHired {
			hired = 1
		}
		if _, err := stmt.ExecContext(ctx,
			f.ID, f.CandidateKey, f.DateKey, f.CountryKey, f.SeniorityKey, f.TechnologyKey,
			f.CodeChallengeScore, f.TechnicalInterviewScore, hired); err != nil {
			return fmt.Errorf("failed to insert fact %d: %w", f.ID, err)
		}
	}
	return nil
}

// verifyCounts compares persisted row counts against what the
// transform produced; any mismatch fails the run.
func (l *SQLiteLoader) verifyCounts(ctx context.Context, star *models.Star) error {
	expected := map[string]int{
		"dim_candidate":     len(star.Candidates),
		"dim_date":          len(star.Dates),
		"dim_country":       len(star.Countries),
		"dim_seniority":     len(star.Seniorities),
		"dim_technology":    len(star.Technologies),
		"fact_applications": len(star.Facts),
	}

	// Iterate in a fixed order so log output is stable.
	for _, table := range []string{
		"dim_candidate", "dim_date", "dim_country",
		"dim_seniority", "dim_technology", "fact_applications",
	} {
		var count int
		if err := l.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			return fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		if count != expected[table] {
			return fmt.Errorf("load verification failed for %s: expected %d rows, found %d", table, expected[table], count)
		}
		l.Log.Info("table loaded", "table", table, "rows", count)
	}
	return nil
}
