package etl

import (
	"context"

	"github.com/BartekS5/recruitment-dw/pkg/models"
)

// Extractor produces the full validated batch of raw application
// records, or fails the whole run.
type Extractor interface {
	Extract(ctx context.Context) ([]models.RawApplication, error)
}

// Loader persists a transformed star schema, dimensions before
// facts.
type Loader interface {
	Load(ctx context.Context, star *models.Star) error
}
