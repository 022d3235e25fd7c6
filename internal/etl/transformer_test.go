package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BartekS5/recruitment-dw/pkg/models"
)

func rawRecord(mutate func(*models.RawApplication)) models.RawApplication {
	rec := models.RawApplication{
		FirstName:               "Ada",
		LastName:                "Lovelace",
		Email:                   "ada@example.com",
		ApplicationDate:         time.Date(2021, 4, 9, 0, 0, 0, 0, time.UTC),
		Country:                 "United Kingdom",
		YearsOfExperience:       12,
		Seniority:               "Senior",
		Technology:              "Go",
		CodeChallengeScore:      8,
		TechnicalInterviewScore: 9,
	}
	if mutate != nil {
		mutate(&rec)
	}
	return rec
}

func TestHired(t *testing.T) {
	cases := []struct {
		code, tech int
		want       bool
	}{
		{8, 9, true},
		{7, 6, false},
		{6, 7, false},
		{10, 10, true},
		{7, 7, true},
		{0, 0, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Hired(tc.code, tc.tech), "code=%d tech=%d", tc.code, tc.tech)
	}
}

func TestTransformer_Transform(t *testing.T) {
	tr := NewTransformer(testLogger())

	t.Run("one fact per record, hired flag derived", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(nil),
			rawRecord(func(r *models.RawApplication) {
				r.CodeChallengeScore = 7
				r.TechnicalInterviewScore = 6
			}),
		}
		star, err := tr.Transform(records)
		require.NoError(t, err)
		require.Len(t, star.Facts, 2)
		require.True(t, star.Facts[0].IsHired)
		require.False(t, star.Facts[1].IsHired)
		require.Equal(t, 1, star.HiredCount())
	})

	t.Run("same candidate triple collapses to one dimension row", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(func(r *models.RawApplication) { r.Email = "a@x.com" }),
			rawRecord(func(r *models.RawApplication) {
				r.Email = "a@x.com"
				r.ApplicationDate = time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
				r.Technology = "Rust"
			}),
			rawRecord(func(r *models.RawApplication) { r.Email = "a@x.com" }),
		}
		star, err := tr.Transform(records)
		require.NoError(t, err)
		require.Len(t, star.Candidates, 1)
		require.Len(t, star.Facts, 3)
		for _, f := range star.Facts {
			require.Equal(t, 1, f.CandidateKey)
		}
	})

	t.Run("differing in any identity field yields a new candidate", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(nil),
			rawRecord(func(r *models.RawApplication) { r.FirstName = "Augusta" }),
			rawRecord(func(r *models.RawApplication) { r.LastName = "Byron" }),
			rawRecord(func(r *models.RawApplication) { r.Email = "countess@example.com" }),
		}
		star, err := tr.Transform(records)
		require.NoError(t, err)
		require.Len(t, star.Candidates, 4)
	})

	t.Run("surrogate keys are dense and first-seen ordered", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(func(r *models.RawApplication) { r.Country = "Brazil" }),
			rawRecord(func(r *models.RawApplication) { r.Country = "Colombia" }),
			rawRecord(func(r *models.RawApplication) { r.Country = "Brazil" }),
			rawRecord(func(r *models.RawApplication) { r.Country = "Ecuador" }),
		}
		star, err := tr.Transform(records)
		require.NoError(t, err)
		require.Equal(t, []models.Country{
			{Key: 1, Name: "Brazil"},
			{Key: 2, Name: "Colombia"},
			{Key: 3, Name: "Ecuador"},
		}, star.Countries)
		require.Equal(t, 1, star.Facts[2].CountryKey)
	})

	t.Run("date dimension derives year month quarter", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(func(r *models.RawApplication) {
				r.ApplicationDate = time.Date(2020, 11, 3, 0, 0, 0, 0, time.UTC)
			}),
		}
		star, err := tr.Transform(records)
		require.NoError(t, err)
		require.Equal(t, models.Date{
			Key: 1, FullDate: "2020-11-03", Year: 2020, Month: 11, Quarter: 4,
		}, star.Dates[0])
	})

	t.Run("identities use the trimmed form, first-seen spelling wins", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(func(r *models.RawApplication) { r.Technology = "  DevOps " }),
			rawRecord(func(r *models.RawApplication) { r.Technology = "DevOps" }),
		}
		star, err := tr.Transform(records)
		require.NoError(t, err)
		require.Len(t, star.Technologies, 1)
		require.Equal(t, "DevOps", star.Technologies[0].Name)
	})

	t.Run("facts are never deduplicated even when identical", func(t *testing.T) {
		records := []models.RawApplication{rawRecord(nil), rawRecord(nil)}
		star, err := tr.Transform(records)
		require.NoError(t, err)
		require.Len(t, star.Facts, 2)
		require.Equal(t, 1, star.Facts[0].ID)
		require.Equal(t, 2, star.Facts[1].ID)
	})

	t.Run("deterministic on unchanged input", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(func(r *models.RawApplication) { r.Country = "Brazil" }),
			rawRecord(func(r *models.RawApplication) { r.Country = "Ecuador"; r.Seniority = "Junior" }),
			rawRecord(func(r *models.RawApplication) { r.Email = "b@x.com" }),
		}
		first, err := tr.Transform(records)
		require.NoError(t, err)
		second, err := tr.Transform(records)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("out-of-range score reaching the core is fatal", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(func(r *models.RawApplication) { r.CodeChallengeScore = 12 }),
		}
		_, err := tr.Transform(records)
		require.Error(t, err)
		require.Contains(t, err.Error(), "out of range")
	})

	t.Run("missing date reaching the core is fatal", func(t *testing.T) {
		records := []models.RawApplication{
			rawRecord(func(r *models.RawApplication) { r.ApplicationDate = time.Time{} }),
		}
		_, err := tr.Transform(records)
		require.Error(t, err)
	})

	t.Run("empty batch yields an empty star", func(t *testing.T) {
		star, err := tr.Transform(nil)
		require.NoError(t, err)
		require.Empty(t, star.Facts)
		require.Empty(t, star.Candidates)
	})
}
