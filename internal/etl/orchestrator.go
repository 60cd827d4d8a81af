package etl

import (
	"context"
	"regexp"

	"github.com/pkg/errors"

	"github.com/mjaros/pg2ch/pkg/logger"
	"github.com/mjaros/pg2ch/pkg/models"
)

// tableNamePattern accepts a bare table name or database.table.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Result summarizes a completed job run.
type Result struct {
	RowsUploaded     int64
	BatchesProcessed int
}

// Orchestrator drives a job end to end: plan, resume decision, schema
// initialization, sequential batch transfer with checkpointing, and cleanup.
//
// Batches are processed strictly in ascending order. The checkpoint always
// describes a prefix of completed batches, which is what makes resumption
// sound; it is saved synchronously after every written batch and before any
// error is propagated.
type Orchestrator struct {
	Source      SourceReader
	Destination DestinationWriter
	Checkpoints CheckpointStore

	planner *Planner
	schema  *SchemaInitializer
}

func NewOrchestrator(source SourceReader, destination DestinationWriter, checkpoints CheckpointStore) *Orchestrator {
	return &Orchestrator{
		Source:      source,
		Destination: destination,
		Checkpoints: checkpoints,
		planner:     NewPlanner(source),
		schema:      NewSchemaInitializer(destination),
	}
}

// Run executes the job and returns the cumulative rows uploaded and the
// number of batches in the plan. Errors carry one of the kinds in errors.go.
func (o *Orchestrator) Run(ctx context.Context, job models.IngestionJob) (*Result, error) {
	if job.Query == "" {
		return nil, errors.Wrap(ErrInvalidConfig, "source query must not be empty")
	}
	if !tableNamePattern.MatchString(job.Table) {
		return nil, errors.Wrapf(ErrInvalidConfig, "malformed destination table name %q", job.Table)
	}

	plan, err := o.planner.Plan(ctx, job.Query, job.BatchSize)
	if err != nil {
		return nil, err
	}
	logger.Infof("Plan: %d rows, %d batches of up to %d rows.", plan.TotalRows, plan.TotalBatches, plan.BatchSize)

	// Empty source: terminal success with no schema or checkpoint side
	// effects.
	if plan.TotalRows == 0 {
		logger.Infof("Nothing to upload for %s.", job.Table)
		return &Result{}, nil
	}

	jobKey := JobKey(job.Table)
	startBatch, uploaded, resumed, err := o.resumePoint(job, jobKey, plan)
	if err != nil {
		return nil, err
	}
	if resumed {
		logger.Infof("Resuming %s from batch %d/%d (%d rows already uploaded).",
			job.Table, startBatch+1, plan.TotalBatches, uploaded)
	}

	schemaDone := resumed

	for i := startBatch; i < plan.TotalBatches; i++ {
		offset := int64(i) * int64(plan.BatchSize)
		logger.Infof("Batch %d/%d: fetching window [%d, %d).", i+1, plan.TotalBatches, offset, offset+int64(plan.BatchSize))

		batch, err := o.Source.FetchRows(ctx, job.Query, offset, int64(plan.BatchSize))
		if err != nil {
			o.saveRollback(job, plan, i, uploaded)
			return nil, errors.Wrapf(ErrSourceUnavailable, "fetching batch %d: %v", i, err)
		}

		// An empty window still advances the index. The plan counted
		// these rows, so skipping the write keeps batch numbering
		// aligned even if the source shrank underneath us.
		if batch.Len() == 0 {
			logger.Warnf("Batch %d/%d came back empty, skipping.", i+1, plan.TotalBatches)
			continue
		}

		if !schemaDone {
			if err := o.schema.EnsureTable(ctx, batch, job.Table, job.Mode); err != nil {
				return nil, err
			}
			schemaDone = true
		}

		if err := o.Destination.WriteBatch(ctx, job.Table, batch); err != nil {
			o.saveRollback(job, plan, i, uploaded)
			return nil, errors.Wrapf(ErrDestinationUnavailable, "writing batch %d: %v", i, err)
		}

		uploaded += int64(batch.Len())
		if err := o.Checkpoints.Save(&models.CheckpointRecord{
			Table:              job.Table,
			LastCompletedBatch: i,
			TotalUploaded:      uploaded,
			TotalRows:          plan.TotalRows,
			BatchSize:          plan.BatchSize,
		}); err != nil {
			return nil, errors.Wrapf(ErrCheckpointUnavailable, "saving checkpoint after batch %d: %v", i, err)
		}

		logger.Infof("Batch %d/%d done: %d rows | progress %d/%d (%.1f%%).",
			i+1, plan.TotalBatches, batch.Len(), uploaded, plan.TotalRows,
			float64(uploaded)/float64(plan.TotalRows)*100)
	}

	if err := o.Checkpoints.Clear(jobKey); err != nil {
		logger.Warnf("Failed to clear checkpoint for %s: %v", job.Table, err)
	}

	logger.Infof("Ingestion complete: %d rows in %d batches into %s.", uploaded, plan.TotalBatches, job.Table)
	return &Result{RowsUploaded: uploaded, BatchesProcessed: plan.TotalBatches}, nil
}

// resumePoint decides between a fresh start and a resume. A checkpoint whose
// table or plan parameters differ from the current job belongs to a different
// logical job; it is cleared, not resumed into. The table comparison matters
// because job keys are not injective: distinct tables such as
// analytics.events and analytics_events normalize to the same key.
func (o *Orchestrator) resumePoint(job models.IngestionJob, jobKey string, plan *models.BatchPlan) (startBatch int, uploaded int64, resumed bool, err error) {
	record, err := o.Checkpoints.Load(jobKey)
	if err != nil {
		return 0, 0, false, errors.Wrap(ErrCheckpointUnavailable, err.Error())
	}
	if record == nil {
		return 0, 0, false, nil
	}
	if record.Table != job.Table {
		logger.Warnf("Checkpoint for %s belongs to table %s, not %s, starting fresh.",
			jobKey, record.Table, job.Table)
		return o.discardCheckpoint(jobKey)
	}
	if !record.Matches(plan) {
		logger.Warnf("Checkpoint for %s does not match current plan (rows %d vs %d, batch size %d vs %d), starting fresh.",
			jobKey, record.TotalRows, plan.TotalRows, record.BatchSize, plan.BatchSize)
		return o.discardCheckpoint(jobKey)
	}
	// A record with no completed batches has nothing to preserve. Start
	// fresh so schema initialization still runs.
	if record.LastCompletedBatch < 0 {
		return 0, 0, false, nil
	}
	return record.LastCompletedBatch + 1, record.TotalUploaded, true, nil
}

func (o *Orchestrator) discardCheckpoint(jobKey string) (int, int64, bool, error) {
	if err := o.Checkpoints.Clear(jobKey); err != nil {
		return 0, 0, false, errors.Wrap(ErrCheckpointUnavailable, err.Error())
	}
	return 0, 0, false, nil
}

// saveRollback persists progress up to but not including the failed batch so
// the next run retries exactly the batch that failed. A failure here is only
// logged: the caller is already propagating the original transfer error.
func (o *Orchestrator) saveRollback(job models.IngestionJob, plan *models.BatchPlan, failedBatch int, uploaded int64) {
	record := &models.CheckpointRecord{
		Table:              job.Table,
		LastCompletedBatch: failedBatch - 1,
		TotalUploaded:      uploaded,
		TotalRows:          plan.TotalRows,
		BatchSize:          plan.BatchSize,
	}
	if err := o.Checkpoints.Save(record); err != nil {
		logger.Errorf("Failed to save checkpoint after failed batch %d: %v", failedBatch, err)
		return
	}
	logger.Infof("Progress saved: rerun to resume from batch %d.", failedBatch+1)
}
