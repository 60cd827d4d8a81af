package etl

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/mjaros/pg2ch/pkg/models"
)

// ClickHouseWriter writes batches through the native ClickHouse client.
// WriteBatch appends; deduplication is left to the destination schema.
type ClickHouseWriter struct {
	Conn driver.Conn
}

func NewClickHouseWriter(conn driver.Conn) *ClickHouseWriter {
	return &ClickHouseWriter{Conn: conn}
}

// CreateTable issues CREATE TABLE IF NOT EXISTS with a MergeTree engine and
// no ordering key, matching what an ad-hoc analytical import needs.
func (w *ClickHouseWriter) CreateTable(ctx context.Context, table string, columns []models.ColumnDef) error {
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		defs = append(defs, fmt.Sprintf("    `%s` %s", col.Name, col.Type))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n) ENGINE = MergeTree()\nORDER BY tuple()",
		table, strings.Join(defs, ",\n"))

	if err := w.Conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s failed: %w", table, err)
	}
	return nil
}

func (w *ClickHouseWriter) DropTableIfExists(ctx context.Context, table string) error {
	if err := w.Conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return fmt.Errorf("drop table %s failed: %w", table, err)
	}
	return nil
}

// WriteBatch sends all rows of the batch in a single insert. The insert
// either fully succeeds or is treated as fully failed; partially transmitted
// rows surface as duplicates after a resume, which is the documented
// at-least-once trade-off.
func (w *ClickHouseWriter) WriteBatch(ctx context.Context, table string, batch *models.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	quoted := make([]string, len(batch.Columns))
	for i, col := range batch.Columns {
		quoted[i] = fmt.Sprintf("`%s`", col)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s)", table, strings.Join(quoted, ", "))

	chBatch, err := w.Conn.PrepareBatch(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert into %s failed: %w", table, err)
	}

	for _, row := range batch.Rows {
		values := make([]interface{}, len(batch.Columns))
		for i, col := range batch.Columns {
			values[i] = row[col]
		}
		if err := chBatch.Append(values...); err != nil {
			return fmt.Errorf("append row to %s failed: %w", table, err)
		}
	}

	if err := chBatch.Send(); err != nil {
		return fmt.Errorf("insert into %s failed: %w", table, err)
	}
	return nil
}
