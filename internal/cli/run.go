package cli

import (
	"github.com/spf13/cobra"
)

type RunOptions struct {
	InputPath     string
	WarehousePath string
	DryRun        bool
	Verbose       bool
}

func NewRunCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full extract-transform-load batch",
		RunE: func(c *cobra.Command, args []string) error {
			return runPipeline(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "Path to the candidates file (default from RDW_INPUT_PATH)")
	cmd.Flags().StringVarP(&opts.WarehousePath, "db", "d", "", "Path to the warehouse database file (default from RDW_WAREHOUSE_PATH)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Extract and transform without writing to the warehouse")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

type KPIOptions struct {
	WarehousePath string
	Verbose       bool
}

func NewKPICmd() *cobra.Command {
	opts := &KPIOptions{}

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Run the hiring KPI queries against an existing warehouse",
		RunE: func(c *cobra.Command, args []string) error {
			return runKPI(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.WarehousePath, "db", "d", "", "Path to the warehouse database file (default from RDW_WAREHOUSE_PATH)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

type ExportOptions struct {
	WarehousePath string
	OutputDir     string
	Verbose       bool
}

func NewExportCmd() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the warehouse tables to CSV files for BI tools",
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.WarehousePath, "db", "d", "", "Path to the warehouse database file (default from RDW_WAREHOUSE_PATH)")
	cmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "", "Directory for the exported CSV files (default from RDW_EXPORT_DIR)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
