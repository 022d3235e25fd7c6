package etl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BartekS5/recruitment-dw/pkg/models"
)

// Hired applies the hiring rule: both scores at or above seven. It is
// a pure function of the two scores; no other field influences the
// outcome.
func Hired(codeChallenge, technicalInterview int) bool {
	return codeChallenge >= 7 && technicalInterview >= 7
}

// dimBuilder assigns surrogate keys in first-seen order. Keys are
// dense, 1-based and never reused within a run. One instance per
// dimension, scoped to the transform call that created it.
type dimBuilder[R any] struct {
	keys map[string]int
	rows []R
}

func newDimBuilder[R any]() *dimBuilder[R] {
	return &dimBuilder[R]{keys: make(map[string]int)}
}

// keyFor returns the surrogate key for the given identity, creating
// the dimension row via newRow on first sight. The first-seen
// spelling of the identity's attributes is what the row keeps.
func (b *dimBuilder[R]) keyFor(identity string, newRow func(key int) R) int {
	if key, ok := b.keys[identity]; ok {
		return key
	}
	key := len(b.rows) + 1
	b.keys[identity] = key
	b.rows = append(b.rows, newRow(key))
	return key
}

// identitySep joins composite identity tuples. A unit separator
// cannot appear in trimmed text fields, so joined tuples never
// collide.
const identitySep = "\x1f"

// Transformer maps the validated raw batch onto the star schema:
// normalized identities, surrogate keys, derived hiring outcome and
// an integrity check over the result.
type Transformer struct {
	log       *slog.Logger
	validator *Validator
}

func NewTransformer(log *slog.Logger) *Transformer {
	return &Transformer{log: log, validator: NewValidator()}
}

func (t *Transformer) Transform(records []models.RawApplication) (*models.Star, error) {
	candidates := newDimBuilder[models.Candidate]()
	dates := newDimBuilder[models.Date]()
	countries := newDimBuilder[models.Country]()
	seniorities := newDimBuilder[models.Seniority]()
	technologies := newDimBuilder[models.Technology]()

	facts := make([]models.Application, 0, len(records))

	for i, rec := range records {
		if err := checkRecord(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		rec.Normalize()

		candidateKey := candidates.keyFor(
			strings.Join([]string{rec.FirstName, rec.LastName, rec.Email}, identitySep),
			func(key int) models.Candidate {
				return models.Candidate{
					Key:       key,
					FirstName: rec.FirstName,
					LastName:  rec.LastName,
					Email:     rec.Email,
				}
			})

		fullDate := rec.ApplicationDate.Format(models.DateLayout)
		dateKey := dates.keyFor(fullDate, func(key int) models.Date {
			month := int(rec.ApplicationDate.Month())
			return models.Date{
				Key:      key,
				FullDate: fullDate,
				Year:     rec.ApplicationDate.Year(),
				Month:    month,
				Quarter:  (month-1)/3 + 1,
			}
		})

		countryKey := countries.keyFor(rec.Country, func(key int) models.Country {
			return models.Country{Key: key, Name: rec.Country}
		})
		seniorityKey := seniorities.keyFor(rec.Seniority, func(key int) models.Seniority {
			return models.Seniority{Key: key, Level: rec.Seniority}
		})
		technologyKey := technologies.keyFor(rec.Technology, func(key int) models.Technology {
			return models.Technology{Key: key, Name: rec.Technology}
		})

		facts = append(facts, models.Application{
			ID:                      i + 1,
			CandidateKey:            candidateKey,
			DateKey:                 dateKey,
			CountryKey:              countryKey,
			SeniorityKey:            seniorityKey,
			TechnologyKey:           technologyKey,
			CodeChallengeScore:      rec.CodeChallengeScore,
			TechnicalInterviewScore: rec.TechnicalInterviewScore,
			IsHired:                 Hired(rec.CodeChallengeScore, rec.TechnicalInterviewScore),
		})
	}

	star := &models.Star{
		Candidates:   candidates.rows,
		Dates:        dates.rows,
		Countries:    countries.rows,
		Seniorities:  seniorities.rows,
		Technologies: technologies.rows,
		Facts:        facts,
	}

	if err := t.validator.ValidateStar(star); err != nil {
		return nil, fmt.Errorf("integrity check failed: %w", err)
	}

	t.log.Info("transformation complete",
		"facts", len(star.Facts),
		"hired", star.HiredCount(),
		"candidates", len(star.Candidates),
		"dates", len(star.Dates),
		"countries", len(star.Countries),
		"seniorities", len(star.Seniorities),
		"technologies", len(star.Technologies),
	)
	return star, nil
}

// checkRecord re-verifies at transform time what extraction already
// enforced. A violation here means the record reached the core
// without going through a conforming extractor.
func checkRecord(rec models.RawApplication) error {
	if rec.ApplicationDate.IsZero() {
		return fmt.Errorf("missing application date")
	}
	if rec.CodeChallengeScore < 0 || rec.CodeChallengeScore > 10 {
		return fmt.Errorf("code challenge score %d out of range 0-10", rec.CodeChallengeScore)
	}
	if rec.TechnicalInterviewScore < 0 || rec.TechnicalInterviewScore > 10 {
		return fmt.Errorf("technical interview score %d out of range 0-10", rec.TechnicalInterviewScore)
	}
	return nil
}
