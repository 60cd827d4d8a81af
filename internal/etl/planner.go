package etl

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mjaros/pg2ch/pkg/models"
)

// Planner computes the batch plan for a job by counting the source query's
// rows. The count runs exactly once per job start; the resulting plan is
// never trusted from a checkpoint.
type Planner struct {
	Source SourceReader
}

func NewPlanner(source SourceReader) *Planner {
	return &Planner{Source: source}
}

// Plan counts the rows the query produces and derives the batch windows.
// TotalBatches is ceil(TotalRows / batchSize).
func (p *Planner) Plan(ctx context.Context, query string, batchSize int) (*models.BatchPlan, error) {
	if batchSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "batch size must be positive, got %d", batchSize)
	}

	totalRows, err := p.Source.CountRows(ctx, query)
	if err != nil {
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	}

	totalBatches := int((totalRows + int64(batchSize) - 1) / int64(batchSize))

	return &models.BatchPlan{
		TotalRows:    totalRows,
		BatchSize:    batchSize,
		TotalBatches: totalBatches,
	}, nil
}
