package etl

import (
	"context"

	"github.com/mjaros/pg2ch/pkg/models"
)

// SourceReader is the source-side collaborator. FetchRows returns the rows of
// the window [offset, offset+limit) of the query's result set. The query is
// expected to produce a stable row order across repeated paged executions
// (e.g. via an explicit ORDER BY); the engine does not enforce one.
type SourceReader interface {
	CountRows(ctx context.Context, query string) (int64, error)
	FetchRows(ctx context.Context, query string, offset, limit int64) (*models.Batch, error)
}

// DestinationWriter is the destination-side collaborator. WriteBatch has
// append semantics: each call adds rows and never deduplicates.
type DestinationWriter interface {
	CreateTable(ctx context.Context, table string, columns []models.ColumnDef) error
	DropTableIfExists(ctx context.Context, table string) error
	WriteBatch(ctx context.Context, table string, batch *models.Batch) error
}

// CheckpointStore persists job progress between runs. Load returns (nil, nil)
// when no usable checkpoint exists. Save must be durable before it returns.
// Clear is idempotent.
type CheckpointStore interface {
	Load(jobKey string) (*models.CheckpointRecord, error)
	Save(record *models.CheckpointRecord) error
	Clear(jobKey string) error
}
