package etl

import (
	"sort"
	"strings"

	"github.com/mjaros/pg2ch/pkg/utils"
)

// chTypeText is the fallback destination type. Mapping an unknown source type
// to unbounded text is deliberately lossy: the transfer still succeeds and
// the value survives as its string form.
const chTypeText = "String"

// pgToCHTypes maps normalized PostgreSQL type names to ClickHouse types.
// Exact matches are tried first, then prefixes, so parameterized types such
// as VARCHAR(255) or NUMERIC(10,2) resolve through their base name.
var pgToCHTypes = map[string]string{
	"INTEGER":                     "Int32",
	"INT4":                        "Int32",
	"BIGINT":                      "Int64",
	"INT8":                        "Int64",
	"SMALLINT":                    "Int16",
	"INT2":                        "Int16",
	"SERIAL":                      "Int32",
	"BIGSERIAL":                   "Int64",
	"REAL":                        "Float32",
	"FLOAT4":                      "Float32",
	"DOUBLE PRECISION":            "Float64",
	"FLOAT8":                      "Float64",
	"NUMERIC":                     "Decimal(38, 10)",
	"DECIMAL":                     "Decimal(38, 10)",
	"BOOLEAN":                     "Bool",
	"BOOL":                        "Bool",
	"VARCHAR":                     "String",
	"CHARACTER VARYING":           "String",
	"CHAR":                        "String",
	"BPCHAR":                      "String",
	"TEXT":                        "String",
	"DATE":                        "Date",
	"TIMESTAMP":                   "DateTime64(3)",
	"TIMESTAMPTZ":                 "DateTime64(3)",
	"TIMESTAMP WITHOUT TIME ZONE": "DateTime64(3)",
	"TIMESTAMP WITH TIME ZONE":    "DateTime64(3)",
	"TIME":                        "String",
	"UUID":                        "UUID",
	"JSON":                        "String",
	"JSONB":                       "String",
	"BYTEA":                       "String",
	"INET":                        "String",
	"CIDR":                        "String",
	"MACADDR":                     "String",
}

// pgTypesByLength holds the mapping keys longest-first so the prefix stage is
// deterministic: TIMESTAMP(3) must resolve through TIMESTAMP, not TIME.
var pgTypesByLength = func() []string {
	keys := make([]string, 0, len(pgToCHTypes))
	for k := range pgToCHTypes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// categoryToCHTypes maps the runtime value category of a sample to a
// ClickHouse type when no catalog type is known.
var categoryToCHTypes = map[utils.ValueCategory]string{
	utils.CategoryInteger: "Int64",
	utils.CategoryFloat:   "Float64",
	utils.CategoryBool:    "Bool",
	utils.CategoryTime:    "DateTime64(3)",
	utils.CategoryString:  "String",
}

// MapType translates a source column type to a ClickHouse type. Lookup order:
// exact match, prefix match, inference from the sample value's category, and
// finally the text fallback. sourceType may be empty when the driver reported
// no catalog type.
func MapType(sourceType string, sample interface{}) string {
	name := strings.ToUpper(strings.TrimSpace(sourceType))

	if name != "" {
		if ch, ok := pgToCHTypes[name]; ok {
			return ch
		}
		for _, pg := range pgTypesByLength {
			if strings.HasPrefix(name, pg) {
				return pgToCHTypes[pg]
			}
		}
	}

	if sample != nil {
		if ch, ok := categoryToCHTypes[utils.CategoryOf(sample)]; ok {
			return ch
		}
	}

	return chTypeText
}
