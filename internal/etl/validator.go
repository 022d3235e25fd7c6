package etl

import (
	"fmt"
	"strings"

	"github.com/BartekS5/recruitment-dw/pkg/models"
)

// Validator checks a transformed star schema before it is handed to
// the loader. A failure here signals a defect in key assignment, not
// a data-quality issue: dimensions and facts are built from the same
// records.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStar verifies that every dimension carries dense 1-based
// keys and no duplicate identity tuples, and that every fact row's
// five foreign keys resolve to an existing dimension row.
func (v *Validator) ValidateStar(star *models.Star) error {
	if err := uniqueIdentities("dim_candidate", len(star.Candidates), func(i int) string {
		c := star.Candidates[i]
		return strings.Join([]string{c.FirstName, c.LastName, c.Email}, identitySep)
	}); err != nil {
		return err
	}
	if err := uniqueIdentities("dim_date", len(star.Dates), func(i int) string { return star.Dates[i].FullDate }); err != nil {
		return err
	}
	if err := uniqueIdentities("dim_country", len(star.Countries), func(i int) string { return star.Countries[i].Name }); err != nil {
		return err
	}
	if err := uniqueIdentities("dim_seniority", len(star.Seniorities), func(i int) string { return star.Seniorities[i].Level }); err != nil {
		return err
	}
	if err := uniqueIdentities("dim_technology", len(star.Technologies), func(i int) string { return star.Technologies[i].Name }); err != nil {
		return err
	}
	if err := denseKeys("dim_candidate", len(star.Candidates), func(i int) int { return star.Candidates[i].Key }); err != nil {
		return err
	}
	if err := denseKeys("dim_date", len(star.Dates), func(i int) int { return star.Dates[i].Key }); err != nil {
		return err
	}
	if err := denseKeys("dim_country", len(star.Countries), func(i int) int { return star.Countries[i].Key }); err != nil {
		return err
	}
	if err := denseKeys("dim_seniority", len(star.Seniorities), func(i int) int { return star.Seniorities[i].Key }); err != nil {
		return err
	}
	if err := denseKeys("dim_technology", len(star.Technologies), func(i int) int { return star.Technologies[i].Key }); err != nil {
		return err
	}

	for _, f := range star.Facts {
		if err := resolves(f.ID, "candidate_key", f.CandidateKey, len(star.Candidates)); err != nil {
			return err
		}
		if err := resolves(f.ID, "date_key", f.DateKey, len(star.Dates)); err != nil {
			return err
		}
		if err := resolves(f.ID, "country_key", f.CountryKey, len(star.Countries)); err != nil {
			return err
		}
		if err := resolves(f.ID, "seniority_key", f.SeniorityKey, len(star.Seniorities)); err != nil {
			return err
		}
		if err := resolves(f.ID, "technology_key", f.TechnologyKey, len(star.Technologies)); err != nil {
			return err
		}
	}
	return nil
}

// uniqueIdentities checks that no two rows of a dimension carry the
// same identity tuple.
func uniqueIdentities(table string, n int, identityAt func(i int) string) error {
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		identity := identityAt(i)
		if prev, ok := seen[identity]; ok {
			return fmt.Errorf("%s: rows %d and %d carry the same identity", table, prev, i)
		}
		seen[identity] = i
	}
	return nil
}

// denseKeys checks that row i carries key i+1. Builders assign keys
// in first-seen order, so anything else means a key was skipped or
// reused.
func denseKeys(table string, n int, keyAt func(i int) int) error {
	for i := 0; i < n; i++ {
		if got := keyAt(i); got != i+1 {
			return fmt.Errorf("%s: row %d carries key %d, want %d", table, i, got, i+1)
		}
	}
	return nil
}

// resolves checks a foreign key against the size of its dimension;
// keys are dense, so membership reduces to a range check.
func resolves(factID int, column string, key, dimSize int) error {
	if key < 1 || key > dimSize {
		return fmt.Errorf("fact %d: %s %d does not resolve to a dimension row (1..%d)", factID, column, key, dimSize)
	}
	return nil
}
