// Package cli handles the command-line interface logic using the
// Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recruitment-dw",
		Short: "Recruitment data warehouse ETL",
		Long: `recruitment-dw loads candidate applications from a delimited file
into a star-schema SQLite warehouse and answers hiring KPI queries over it.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewKPICmd())
	rootCmd.AddCommand(NewExportCmd())

	return rootCmd
}
