package etl

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mjaros/pg2ch/pkg/logger"
	"github.com/mjaros/pg2ch/pkg/models"
	"github.com/mjaros/pg2ch/pkg/utils"
)

// SchemaInitializer derives a destination table definition from a sample
// batch and issues the create/replace DDL. It runs at most once per job run,
// and only when a replace-mode run starts fresh from batch 0; a resumed run
// never re-creates the table, preserving the rows already written.
type SchemaInitializer struct {
	Destination DestinationWriter
}

func NewSchemaInitializer(destination DestinationWriter) *SchemaInitializer {
	return &SchemaInitializer{Destination: destination}
}

// EnsureTable prepares the destination table for the job. In append mode it
// does nothing: the table is assumed compatible or created out of band.
func (s *SchemaInitializer) EnsureTable(ctx context.Context, sample *models.Batch, table string, mode models.Mode) error {
	if mode != models.ModeReplace {
		return nil
	}

	columns := ColumnDefs(sample)

	if err := s.Destination.DropTableIfExists(ctx, table); err != nil {
		return errors.Wrap(ErrDestinationUnavailable, err.Error())
	}
	logger.Infof("Dropped existing table %s (replace mode).", table)

	if err := s.Destination.CreateTable(ctx, table, columns); err != nil {
		return errors.Wrap(ErrDestinationUnavailable, err.Error())
	}
	logger.Infof("Created table %s with %d columns.", table, len(columns))
	return nil
}

// ColumnDefs maps every column of the sample batch to a Nullable ClickHouse
// type. Columns are Nullable regardless of source nullability: a column
// observed non-null in the sample batch may still be null in a later one.
func ColumnDefs(sample *models.Batch) []models.ColumnDef {
	defs := make([]models.ColumnDef, 0, len(sample.Columns))
	for i, col := range sample.Columns {
		sourceType := ""
		if i < len(sample.Types) {
			sourceType = sample.Types[i]
		}

		values := make([]interface{}, 0, len(sample.Rows))
		for _, row := range sample.Rows {
			values = append(values, row[col])
		}

		chType := MapType(sourceType, utils.FirstNonNil(values))
		defs = append(defs, models.ColumnDef{
			Name: col,
			Type: "Nullable(" + chType + ")",
		})
	}
	return defs
}
