package cli

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/BartekS5/recruitment-dw/internal/config"
	"github.com/BartekS5/recruitment-dw/internal/etl"
	"github.com/BartekS5/recruitment-dw/internal/report"
	"github.com/BartekS5/recruitment-dw/pkg/database"
	"github.com/BartekS5/recruitment-dw/pkg/logger"
)

func runPipeline(ctx context.Context, opts *RunOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	// Flags win over environment.
	if opts.InputPath != "" {
		cfg.InputPath = opts.InputPath
	}
	if opts.WarehousePath != "" {
		cfg.WarehousePath = opts.WarehousePath
	}

	log := logger.New(opts.Verbose).With("run_id", uuid.NewString())

	// A dry run never touches the warehouse, so don't open (and
	// thereby create) the database file for one.
	var loader etl.Loader
	if !opts.DryRun {
		db, err := database.ConnectSQLite(cfg.WarehousePath)
		if err != nil {
			return err
		}
		defer db.Close()
		loader = etl.NewSQLiteLoader(db, log)
	}

	extractor := etl.NewCSVExtractor(cfg.InputPath, cfg.Delimiter, log)
	transformer := etl.NewTransformer(log)

	pipeline := etl.NewPipeline(extractor, transformer, loader, opts.DryRun, log)
	return pipeline.Run(ctx)
}

func runKPI(ctx context.Context, opts *KPIOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if opts.WarehousePath != "" {
		cfg.WarehousePath = opts.WarehousePath
	}

	db, err := database.ConnectSQLite(cfg.WarehousePath)
	if err != nil {
		return err
	}
	defer db.Close()

	return report.NewKPI(db).Print(ctx, os.Stdout)
}

func runExport(ctx context.Context, opts *ExportOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if opts.WarehousePath != "" {
		cfg.WarehousePath = opts.WarehousePath
	}
	if opts.OutputDir != "" {
		cfg.ExportDir = opts.OutputDir
	}

	log := logger.New(opts.Verbose)

	db, err := database.ConnectSQLite(cfg.WarehousePath)
	if err != nil {
		return err
	}
	defer db.Close()

	return report.ExportCSV(ctx, db, cfg.ExportDir, log)
}
