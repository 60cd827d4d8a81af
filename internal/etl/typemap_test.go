package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapTypeExactMatches(t *testing.T) {
	tests := map[string]string{
		"INTEGER":                  "Int32",
		"BIGINT":                   "Int64",
		"SMALLINT":                 "Int16",
		"DOUBLE PRECISION":         "Float64",
		"NUMERIC":                  "Decimal(38, 10)",
		"BOOLEAN":                  "Bool",
		"TEXT":                     "String",
		"DATE":                     "Date",
		"TIMESTAMP WITH TIME ZONE": "DateTime64(3)",
		"UUID":                     "UUID",
		"JSONB":                    "String",
	}
	for pg, ch := range tests {
		assert.Equal(t, ch, MapType(pg, nil), "source type %s", pg)
	}
}

func TestMapTypeParameterizedTypes(t *testing.T) {
	assert.Equal(t, "String", MapType("VARCHAR(255)", nil))
	assert.Equal(t, "String", MapType("CHARACTER VARYING(64)", nil))
	assert.Equal(t, "Decimal(38, 10)", MapType("NUMERIC(10,2)", nil))
	assert.Equal(t, "DateTime64(3)", MapType("TIMESTAMP(6)", nil),
		"TIMESTAMP(6) must resolve through TIMESTAMP, not TIME")
}

func TestMapTypeIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "Int64", MapType("bigint", nil))
	assert.Equal(t, "String", MapType(" varchar(16) ", nil))
}

func TestMapTypeUnknownFallsBackToText(t *testing.T) {
	assert.Equal(t, "String", MapType("CUSTOM_ENUM", nil))
	assert.Equal(t, "String", MapType("", nil))
}

func TestMapTypeInfersFromSample(t *testing.T) {
	tests := []struct {
		name   string
		sample interface{}
		want   string
	}{
		{"integer", int64(42), "Int64"},
		{"float", 3.14, "Float64"},
		{"bool", true, "Bool"},
		{"time", time.Now(), "DateTime64(3)"},
		{"string", "hello", "String"},
		{"bytes", []byte("raw"), "String"},
		{"unhandled", struct{}{}, "String"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapType("", tt.sample))
		})
	}
}

func TestMapTypeCatalogBeatsSample(t *testing.T) {
	// When the catalog type is known, the sample is irrelevant.
	assert.Equal(t, "Int32", MapType("INTEGER", "not a number"))
}
