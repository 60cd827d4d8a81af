package cli

import (
	"context"
	"fmt"

	"github.com/mjaros/pg2ch/internal/config"
	"github.com/mjaros/pg2ch/internal/etl"
	"github.com/mjaros/pg2ch/pkg/database"
	"github.com/mjaros/pg2ch/pkg/logger"
	"github.com/mjaros/pg2ch/pkg/models"
)

func runIngest(opts *IngestOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	batchSize := resolveBatchSize(opts.BatchSize, opts.BatchSizeSet, cfg.BatchSize)

	mode := models.ModeReplace
	if opts.Append {
		mode = models.ModeAppend
	}

	pgDB, err := database.ConnectPostgres(cfg.PostgresConnString)
	if err != nil {
		return err
	}
	defer pgDB.Close()

	chConn, err := database.ConnectClickHouse(database.ClickHouseParams{
		Host:     cfg.ClickHouseHost,
		Port:     cfg.ClickHousePort,
		Database: cfg.ClickHouseDatabase,
		User:     cfg.ClickHouseUser,
		Password: cfg.ClickHousePassword,
		Secure:   cfg.ClickHouseSecure,
	})
	if err != nil {
		return err
	}
	defer chConn.Close()

	orchestrator := etl.NewOrchestrator(
		etl.NewPostgresReader(pgDB),
		etl.NewClickHouseWriter(chConn),
		etl.NewFileCheckpointStore(cfg.CheckpointDir),
	)

	job := models.IngestionJob{
		Query:     opts.Query,
		Table:     opts.Table,
		BatchSize: batchSize,
		Mode:      mode,
	}

	result, err := orchestrator.Run(context.Background(), job)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %d rows in %d batches to %s.\n", result.RowsUploaded, result.BatchesProcessed, opts.Table)
	return nil
}

// resolveBatchSize keeps an explicitly passed flag value, even an invalid
// one, so it fails validation instead of being papered over by the
// environment default.
func resolveBatchSize(flagValue int, flagSet bool, configDefault int) int {
	if flagSet {
		return flagValue
	}
	return configDefault
}
