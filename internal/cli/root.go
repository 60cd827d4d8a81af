package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pg2ch",
		Short: "pg2ch - resumable PostgreSQL to ClickHouse ingestion",
		Long: `pg2ch moves query results from PostgreSQL into ClickHouse in bounded
batches. Progress is checkpointed after every batch, so an interrupted run
can be rerun and resumes from the last committed batch.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewIngestCmd())

	return rootCmd
}
