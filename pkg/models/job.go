// Package models holds the shared data types passed between the CLI,
// the ETL engine and the checkpoint store.
package models

// Mode controls what happens to the destination table at job start.
type Mode string

const (
	// ModeReplace drops and recreates the destination table on a fresh run.
	ModeReplace Mode = "replace"
	// ModeAppend reuses the existing destination table.
	ModeAppend Mode = "append"
)

// IngestionJob identifies one unit of work. It is immutable once a run starts.
type IngestionJob struct {
	Query     string
	Table     string
	BatchSize int
	Mode      Mode
}

// BatchPlan is derived at the start of every run and never persisted.
type BatchPlan struct {
	TotalRows    int64
	BatchSize    int
	TotalBatches int
}

// CheckpointRecord is the persisted progress snapshot for a job. The JSON
// field names match the checkpoint files written by earlier versions of this
// tool so that operators can keep inspecting them with plain cat/jq.
type CheckpointRecord struct {
	Table              string `json:"table_name"`
	LastCompletedBatch int    `json:"last_completed_batch"`
	TotalUploaded      int64  `json:"total_uploaded"`
	TotalRows          int64  `json:"total_rows"`
	BatchSize          int    `json:"batch_size"`
}

// Matches reports whether the record was written against the same plan
// parameters. A mismatch means the checkpoint belongs to a different logical
// job that happens to share the destination table name.
func (c *CheckpointRecord) Matches(plan *BatchPlan) bool {
	return c.TotalRows == plan.TotalRows && c.BatchSize == plan.BatchSize
}

// Row is a single source row keyed by column name.
type Row map[string]interface{}

// Batch is one transfer unit: the rows of a single paged fetch, plus the
// column order and the source catalog type names reported by the driver
// (empty strings when the driver does not know).
type Batch struct {
	Columns []string
	Types   []string
	Rows    []Row
}

// Len returns the number of rows in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

// ColumnDef is one column of a destination table definition.
type ColumnDef struct {
	Name string
	Type string
}
