package etl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjaros/pg2ch/pkg/models"
)

func sampleBatch() *models.Batch {
	return &models.Batch{
		Columns: []string{"id", "name", "score", "seen"},
		Types:   []string{"INT8", "VARCHAR", "", ""},
		Rows: []models.Row{
			{"id": int64(1), "name": "a", "score": nil, "seen": true},
			{"id": int64(2), "name": "b", "score": 1.5, "seen": false},
		},
	}
}

func TestColumnDefs(t *testing.T) {
	defs := ColumnDefs(sampleBatch())

	require.Len(t, defs, 4)
	assert.Equal(t, models.ColumnDef{Name: "id", Type: "Nullable(Int64)"}, defs[0])
	assert.Equal(t, models.ColumnDef{Name: "name", Type: "Nullable(String)"}, defs[1])
	assert.Equal(t, models.ColumnDef{Name: "score", Type: "Nullable(Float64)"}, defs[2],
		"missing catalog type falls back to the first non-null sample")
	assert.Equal(t, models.ColumnDef{Name: "seen", Type: "Nullable(Bool)"}, defs[3])
}

func TestColumnDefsAllNullColumn(t *testing.T) {
	batch := &models.Batch{
		Columns: []string{"ghost"},
		Types:   []string{""},
		Rows:    []models.Row{{"ghost": nil}, {"ghost": nil}},
	}

	defs := ColumnDefs(batch)
	assert.Equal(t, "Nullable(String)", defs[0].Type,
		"no catalog type and no sample leaves only the text fallback")
}

func TestEnsureTableReplaceMode(t *testing.T) {
	dest := &fakeDestination{}
	initializer := NewSchemaInitializer(dest)

	err := initializer.EnsureTable(context.Background(), sampleBatch(), "events", models.ModeReplace)
	require.NoError(t, err)

	assert.Equal(t, []string{"events"}, dest.dropped)
	assert.Equal(t, []string{"events"}, dest.created)
}

func TestEnsureTableAppendModeIsNoOp(t *testing.T) {
	dest := &fakeDestination{}
	initializer := NewSchemaInitializer(dest)

	err := initializer.EnsureTable(context.Background(), sampleBatch(), "events", models.ModeAppend)
	require.NoError(t, err)

	assert.Empty(t, dest.dropped)
	assert.Empty(t, dest.created)
}
