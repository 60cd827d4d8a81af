package utils

import "time"

// ValueCategory classifies a runtime value for type inference when the source
// catalog type is unknown.
type ValueCategory int

const (
	CategoryUnknown ValueCategory = iota
	CategoryInteger
	CategoryFloat
	CategoryBool
	CategoryTime
	CategoryString
)

// CategoryOf returns the category of a scanned database value. Drivers hand
// back a small set of Go types; anything outside it counts as unknown so the
// caller can fall through to its textual default.
func CategoryOf(val interface{}) ValueCategory {
	switch val.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return CategoryInteger
	case float32, float64:
		return CategoryFloat
	case bool:
		return CategoryBool
	case time.Time:
		return CategoryTime
	case string, []byte:
		return CategoryString
	default:
		return CategoryUnknown
	}
}

// FirstNonNil returns the first non-nil value in vals, or nil when every
// value is nil. Used to pick an inference sample out of a column.
func FirstNonNil(vals []interface{}) interface{} {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
