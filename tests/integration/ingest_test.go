package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/mjaros/pg2ch/internal/config"
	"github.com/mjaros/pg2ch/internal/etl"
	"github.com/mjaros/pg2ch/pkg/database"
	"github.com/mjaros/pg2ch/pkg/models"
)

// Requires a reachable PostgreSQL and ClickHouse, configured through the
// usual PG_*/CH_* environment variables. Gated so `go test ./...` stays
// self-contained.
func TestQueryIngestion(t *testing.T) {
	if os.Getenv("PG2CH_INTEGRATION") == "" {
		t.Skip("set PG2CH_INTEGRATION=1 to run integration tests")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	pgDB, err := database.ConnectPostgres(cfg.PostgresConnString)
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL: %v", err)
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
		t.Fatalf("Failed to connect to ClickHouse: %v", err)
	}
	defer chConn.Close()

	ctx := context.Background()
	setupSourceTable(t, pgDB)
	defer cleanup(t, pgDB, chConn)

	orchestrator := etl.NewOrchestrator(
		etl.NewPostgresReader(pgDB),
		etl.NewClickHouseWriter(chConn),
		etl.NewFileCheckpointStore(t.TempDir()),
	)

	result, err := orchestrator.Run(ctx, models.IngestionJob{
		Query:     "SELECT id, label, amount, created_at FROM pg2ch_it_source ORDER BY id",
		Table:     "pg2ch_it_target",
		BatchSize: 10,
		Mode:      models.ModeReplace,
	})
	if err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}

	if result.RowsUploaded != 25 {
		t.Errorf("Expected 25 rows uploaded, got %d", result.RowsUploaded)
	}
	if result.BatchesProcessed != 3 {
		t.Errorf("Expected 3 batches, got %d", result.BatchesProcessed)
	}

	var count uint64
	if err := chConn.QueryRow(ctx, "SELECT count() FROM pg2ch_it_target").Scan(&count); err != nil {
		t.Fatalf("Failed to count destination rows: %v", err)
	}
	if count != 25 {
		t.Errorf("Expected 25 rows in ClickHouse, got %d", count)
	}
}

func setupSourceTable(t *testing.T, db *sql.DB) {
	statements := []string{
		"DROP TABLE IF EXISTS pg2ch_it_source",
		`CREATE TABLE pg2ch_it_source (
			id BIGINT PRIMARY KEY,
			label VARCHAR(64),
			amount NUMERIC(10,2),
			created_at TIMESTAMP
		)`,
		`INSERT INTO pg2ch_it_source (id, label, amount, created_at)
		 SELECT g, 'row ' || g, g * 1.5, now() FROM generate_series(1, 25) AS g`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to prepare source table: %v", err)
		}
	}
}

func cleanup(t *testing.T, pgDB *sql.DB, chConn driver.Conn) {
	if _, err := pgDB.Exec("DROP TABLE IF EXISTS pg2ch_it_source"); err != nil {
		t.Logf("Failed to drop source table: %v", err)
	}
	if err := chConn.Exec(context.Background(), "DROP TABLE IF EXISTS pg2ch_it_target"); err != nil {
		t.Logf("Failed to drop destination table: %v", err)
	}
}
