package filter

import "github.com/hugr-lab/solr-pushdown/expr"

// LogicalTypeID is a DuckDB logical type name.
type LogicalTypeID string

const (
	TypeIDSQLNull      LogicalTypeID = "SQLNULL"
	TypeIDBoolean      LogicalTypeID = "BOOLEAN"
	TypeIDTinyInt      LogicalTypeID = "TINYINT"
	TypeIDSmallInt     LogicalTypeID = "SMALLINT"
	TypeIDInteger      LogicalTypeID = "INTEGER"
	TypeIDBigInt       LogicalTypeID = "BIGINT"
	TypeIDUTinyInt     LogicalTypeID = "UTINYINT"
	TypeIDUSmallInt    LogicalTypeID = "USMALLINT"
	TypeIDUInteger     LogicalTypeID = "UINTEGER"
	TypeIDUBigInt      LogicalTypeID = "UBIGINT"
	TypeIDHugeInt      LogicalTypeID = "HUGEINT"
	TypeIDUHugeInt     LogicalTypeID = "UHUGEINT"
	TypeIDFloat        LogicalTypeID = "FLOAT"
	TypeIDDouble       LogicalTypeID = "DOUBLE"
	TypeIDDecimal      LogicalTypeID = "DECIMAL"
	TypeIDChar         LogicalTypeID = "CHAR"
	TypeIDVarchar      LogicalTypeID = "VARCHAR"
	TypeIDUUID         LogicalTypeID = "UUID"
	TypeIDDate         LogicalTypeID = "DATE"
	TypeIDTimestampSec LogicalTypeID = "TIMESTAMP_SEC"
	TypeIDTimestampMs  LogicalTypeID = "TIMESTAMP_MS"
	TypeIDTimestamp    LogicalTypeID = "TIMESTAMP"
	TypeIDTimestampNs  LogicalTypeID = "TIMESTAMP_NS"
	TypeIDTimestampTZ  LogicalTypeID = "TIMESTAMP_TZ"
)

// typeIDMapping maps DuckDB aliases and full SQL names to the short names.
var typeIDMapping = map[LogicalTypeID]LogicalTypeID{
	"TIMESTAMP WITH TIME ZONE":    TypeIDTimestampTZ,
	"TIMESTAMPTZ":                 TypeIDTimestampTZ,
	"TIMESTAMP_S":                 TypeIDTimestampSec,
	"TIMESTAMP WITHOUT TIME ZONE": TypeIDTimestamp,
	"DATETIME":                    TypeIDTimestamp,
	"INT":                         TypeIDInteger,
	"INT4":                        TypeIDInteger,
	"INT8":                        TypeIDBigInt,
	"INT2":                        TypeIDSmallInt,
	"INT1":                        TypeIDTinyInt,
	"LONG":                        TypeIDBigInt,
	"UINT8":                       TypeIDUBigInt,
	"UINT4":                       TypeIDUInteger,
	"UINT2":                       TypeIDUSmallInt,
	"UINT1":                       TypeIDUTinyInt,
	"INT128":                      TypeIDHugeInt,
	"UINT128":                     TypeIDUHugeInt,
	"FLOAT4":                      TypeIDFloat,
	"FLOAT8":                      TypeIDDouble,
	"REAL":                        TypeIDFloat,
	"NUMERIC":                     TypeIDDecimal,
	"STRING":                      TypeIDVarchar,
	"TEXT":                        TypeIDVarchar,
	"BPCHAR":                      TypeIDChar,
	"BOOL":                        TypeIDBoolean,
}

// Normalize returns the canonical LogicalTypeID for t.
func (t LogicalTypeID) Normalize() LogicalTypeID {
	if mapped, ok := typeIDMapping[t]; ok {
		return mapped
	}
	return t
}

// LiteralType returns the predicate literal type for t. Types with no
// literal counterpart map to their own name.
func (t LogicalTypeID) LiteralType() expr.LiteralType {
	switch t {
	case TypeIDSQLNull:
		return expr.TypeNull
	case TypeIDBoolean:
		return expr.TypeBoolean
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt,
		TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt,
		TypeIDHugeInt, TypeIDUHugeInt:
		return expr.TypeInteger
	case TypeIDFloat, TypeIDDouble:
		return expr.TypeDouble
	case TypeIDDecimal:
		return expr.TypeDecimal
	case TypeIDVarchar, TypeIDChar, TypeIDUUID:
		return expr.TypeString
	case TypeIDDate:
		return expr.TypeDate
	case TypeIDTimestamp, TypeIDTimestampTZ, TypeIDTimestampSec, TypeIDTimestampMs, TypeIDTimestampNs:
		return expr.TypeTimestamp
	default:
		return expr.LiteralType(t)
	}
}

// LogicalType is a DuckDB logical type with its decimal scale, if any.
type LogicalType struct {
	ID    LogicalTypeID
	Width int
	Scale int
}

// HugeInt is the JSON form of a 128-bit integer.
type HugeInt struct {
	Upper int64  `json:"upper"`
	Lower uint64 `json:"lower"`
}

// Base64String is the JSON form of a VARCHAR constant carrying non-UTF-8 data.
type Base64String struct {
	Base64 string `json:"base64"`
}
