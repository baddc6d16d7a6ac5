// SPDX-License-Identifier: Apache-2.0

package index

import (
	"fmt"
	"slices"
)

// Type is the semantic type of an index field, independent of how a given
// search service names it.
type Type uint

const (
	BooleanType Type = iota
	Int32Type
	Int64Type
	DoubleType
	StringType
	DateTimeOffsetType
)

func (t Type) String() string {
	switch t {
	case BooleanType:
		return "Boolean"
	case Int32Type:
		return "Int32"
	case Int64Type:
		return "Int64"
	case DoubleType:
		return "Double"
	case StringType:
		return "String"
	case DateTimeOffsetType:
		return "DateTimeOffset"
	default:
		return fmt.Sprintf("Type(%d)", uint(t))
	}
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// sqlServerTypes maps SQL Server data type names, as reported by
// INFORMATION_SCHEMA.COLUMNS.DATA_TYPE, to index field types. It is read
// only.
var sqlServerTypes = map[string]Type{
	"bit": BooleanType,

	"int":      Int32Type,
	"smallint": Int32Type,
	"tinyint":  Int32Type,
	"bigint":   Int64Type,

	"real":  DoubleType,
	"float": DoubleType,

	// exact numerics are kept as String
	"smallmoney": StringType,
	"money":      StringType,
	"decimal":    StringType,
	"numeric":    StringType,

	"char":     StringType,
	"nchar":    StringType,
	"varchar":  StringType,
	"nvarchar": StringType,

	"smalldatetime":  DateTimeOffsetType,
	"datetime":       DateTimeOffsetType,
	"datetime2":      DateTimeOffsetType,
	"date":           DateTimeOffsetType,
	"datetimeoffset": DateTimeOffsetType,

	"uniqueidentifier": StringType,
}

// MapType returns the index field type for the given source data type. The
// lookup is case sensitive. The boolean is false when the type is not
// supported, in which case the column can't be indexed.
func MapType(dataType string) (Type, bool) {
	t, found := sqlServerTypes[dataType]
	return t, found
}

// SupportedTypes returns the sorted list of source data types that can be
// mapped.
func SupportedTypes() []string {
	types := make([]string, 0, len(sqlServerTypes))
	for t := range sqlServerTypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
