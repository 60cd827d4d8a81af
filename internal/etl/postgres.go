package etl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mjaros/pg2ch/pkg/models"
)

// PostgresReader reads source rows over database/sql. Connections come from
// the pool and are held only for the duration of a single query.
type PostgresReader struct {
	DB *sql.DB
}

func NewPostgresReader(db *sql.DB) *PostgresReader {
	return &PostgresReader{DB: db}
}

// CountRows wraps the job query in a counting subquery and runs it once.
func (r *PostgresReader) CountRows(ctx context.Context, query string) (int64, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) AS cnt FROM (%s) AS subquery", query)

	var total int64
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return total, nil
}

// FetchRows pages the job query with LIMIT/OFFSET and scans the window into a
// batch. Column catalog types come from the driver so the schema initializer
// can map them without a separate information_schema query.
func (r *PostgresReader) FetchRows(ctx context.Context, query string, offset, limit int64) (*models.Batch, error) {
	pagedQuery := fmt.Sprintf("%s LIMIT %d OFFSET %d", query, limit, offset)

	rows, err := r.DB.QueryContext(ctx, pagedQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	types := make([]string, len(cols))
	if colTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range colTypes {
			types[i] = ct.DatabaseTypeName()
		}
	}

	batch := &models.Batch{Columns: cols, Types: types}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(models.Row, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		batch.Rows = append(batch.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batch, nil
}
