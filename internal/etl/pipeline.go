// Package etl implements the extract, transform and load stages of
// the recruitment warehouse pipeline.
package etl

import (
	"context"
	"log/slog"
	"time"
)

// Pipeline runs the three stages in strict sequence, each consuming
// the prior stage's output in memory. The first error aborts the
// whole batch; recovery is re-running it.
type Pipeline struct {
	Extractor   Extractor
	Transformer *Transformer
	Loader      Loader
	DryRun      bool
	Log         *slog.Logger
}

// NewPipeline wires the stages together. When dryRun is set the load
// stage is skipped and the pipeline only reports what it would
// persist.
func NewPipeline(ext Extractor, tr *Transformer, loader Loader, dryRun bool, log *slog.Logger) *Pipeline {
	return &Pipeline{
		Extractor:   ext,
		Transformer: tr,
		Loader:      loader,
		DryRun:      dryRun,
		Log:         log,
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.Log.Info("pipeline starting", "dry_run", p.DryRun)

	records, err := p.Extractor.Extract(ctx)
	if err != nil {
		p.Log.Error("extraction failed", "error", err)
		return err
	}

	star, err := p.Transformer.Transform(records)
	if err != nil {
		p.Log.Error("transformation failed", "error", err)
		return err
	}

	if p.DryRun {
		p.Log.Info("dry run: skipping load", "facts", len(star.Facts))
		return nil
	}

	if err := p.Loader.Load(ctx, star); err != nil {
		p.Log.Error("load failed", "error", err)
		return err
	}

	duration := time.Since(start)
	rate := 0.0
	if duration.Seconds() > 0 {
		rate = float64(len(star.Facts)) / duration.Seconds()
	}
	p.Log.Info("pipeline finished", "facts", len(star.Facts), "duration", duration.Round(time.Millisecond), "rows_per_sec", int(rate))
	return nil
}
