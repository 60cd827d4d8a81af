package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type IngestOptions struct {
	Query       string
	SourceTable string
	Table       string
	BatchSize   int
	// BatchSizeSet records whether --batch-size was given explicitly, so
	// an explicit zero reaches validation instead of the env default.
	BatchSizeSet bool
	Append       bool
}

func NewIngestCmd() *cobra.Command {
	opts := &IngestOptions{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingestion operations",
	}

	cmd.PersistentFlags().StringVarP(&opts.Table, "table", "t", "", "Destination table in ClickHouse")
	cmd.PersistentFlags().IntVarP(&opts.BatchSize, "batch-size", "b", 0, "Rows per batch (default: BATCH_SIZE env, 10000)")
	cmd.PersistentFlags().BoolVar(&opts.Append, "append", false, "Append to the destination table instead of dropping and recreating it")

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Ingest the result set of a PostgreSQL query",
		RunE: func(c *cobra.Command, args []string) error {
			if opts.Table == "" {
				return fmt.Errorf("--table is required with ingest query")
			}
			opts.BatchSizeSet = c.Flags().Changed("batch-size")
			return runIngest(opts)
		},
	}
	queryCmd.Flags().StringVarP(&opts.Query, "query", "q", "", "SQL query to run on PostgreSQL")
	queryCmd.MarkFlagRequired("query")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Ingest a full PostgreSQL table",
		RunE: func(c *cobra.Command, args []string) error {
			opts.Query = fmt.Sprintf("SELECT * FROM %s", opts.SourceTable)
			opts.BatchSizeSet = c.Flags().Changed("batch-size")
			if opts.Table == "" {
				// Drop the schema qualifier: public.users lands in users.
				parts := strings.Split(opts.SourceTable, ".")
				opts.Table = parts[len(parts)-1]
			}
			return runIngest(opts)
		},
	}
	tableCmd.Flags().StringVarP(&opts.SourceTable, "source-table", "s", "", "Source table in PostgreSQL (may include schema, e.g. public.users)")
	tableCmd.MarkFlagRequired("source-table")

	cmd.AddCommand(queryCmd, tableCmd)
	return cmd
}
