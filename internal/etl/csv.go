package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BartekS5/recruitment-dw/pkg/models"
	"github.com/BartekS5/recruitment-dw/pkg/typeconv"
)

// The ten declared columns of the candidates file. Presence of every
// one of them is a hard contract; an unknown or missing header fails
// the run before any row is read.
const (
	colFirstName  = "First Name"
	colLastName   = "Last Name"
	colEmail      = "Email"
	colDate       = "Application Date"
	colCountry    = "Country"
	colYOE        = "YOE"
	colSeniority  = "Seniority"
	colTechnology = "Technology"
	colCodeScore  = "Code Challenge Score"
	colTechScore  = "Technical Interview Score"
)

var expectedColumns = []string{
	colFirstName, colLastName, colEmail, colDate, colCountry,
	colYOE, colSeniority, colTechnology, colCodeScore, colTechScore,
}

// CSVExtractor reads the raw candidates file and enforces column
// shape and field types. Any structural or parse error is fatal for
// the whole batch; there is no row-level skipping.
type CSVExtractor struct {
	Path      string
	Delimiter rune
	Log       *slog.Logger
}

func NewCSVExtractor(path string, delimiter rune, log *slog.Logger) *CSVExtractor {
	return &CSVExtractor{Path: path, Delimiter: delimiter, Log: log}
}

func (e *CSVExtractor) Extract(ctx context.Context) ([]models.RawApplication, error) {
	f, err := os.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = e.Delimiter
	// The header sets the expected field count; every data row must
	// match it or the read fails.

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read input rows: %w", err)
	}

	records := make([]models.RawApplication, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := parseRow(row, index)
		if err != nil {
			// +2: header is line 1, rows are 1-based after it.
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	e.Log.Info("extraction complete", "rows", len(records), "columns", len(expectedColumns))
	return records, nil
}

// mapHeader returns a column-name -> position index after checking
// that the header carries exactly the declared column set: no
// missing, duplicated or extra physical columns.
func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("duplicate column in input file: %q", name)
		}
		index[name] = i
	}

	var missing []string
	for _, name := range expectedColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns in input file: %s", strings.Join(missing, ", "))
	}
	// All declared columns are present and distinct; any extra
	// physical column is a structural error.
	if len(header) != len(expectedColumns) {
		return nil, fmt.Errorf("unexpected column count: got %d, want %d", len(header), len(expectedColumns))
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) (models.RawApplication, error) {
	var rec models.RawApplication
	var err error

	rec.FirstName = row[index[colFirstName]]
	rec.LastName = row[index[colLastName]]
	rec.Email = row[index[colEmail]]
	rec.Country = row[index[colCountry]]
	rec.Seniority = row[index[colSeniority]]
	rec.Technology = row[index[colTechnology]]

	if rec.ApplicationDate, err = typeconv.ParseDate(row[index[colDate]]); err != nil {
		return rec, fmt.Errorf("column %q: %w", colDate, err)
	}
	if rec.YearsOfExperience, err = typeconv.ParseInt(row[index[colYOE]]); err != nil {
		return rec, fmt.Errorf("column %q: %w", colYOE, err)
	}
	if rec.CodeChallengeScore, err = typeconv.ParseScore(row[index[colCodeScore]]); err != nil {
		return rec, fmt.Errorf("column %q: %w", colCodeScore, err)
	}
	if rec.TechnicalInterviewScore, err = typeconv.ParseScore(row[index[colTechScore]]); err != nil {
		return rec, fmt.Errorf("column %q: %w", colTechScore, err)
	}

	return rec, nil
}
