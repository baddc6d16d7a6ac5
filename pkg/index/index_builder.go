// SPDX-License-Identifier: Apache-2.0

package index

import (
	"strings"

	"github.com/xataio/sqlindexer/pkg/schema"
)

type BuildResult struct {
	Definition *Definition
	// Skipped holds the columns left out of the definition because their
	// data type can't be mapped.
	Skipped []schema.Column
}

// Build derives the index definition for the table columns on input. The
// column named primaryKey becomes the String key field, whatever its source
// type. Other columns with an unsupported type are left out. String fields
// are searchable, every other field is filterable, and all fields are
// retrievable. Column order is preserved.
func Build(tableName string, columns []schema.Column, primaryKey string) *Definition {
	return build(tableName, columns, primaryKey).Definition
}

// BuildTable derives the index definition for the table on input, using its
// first primary key column as the key.
func BuildTable(table *schema.Table) *BuildResult {
	return build(table.Name, table.Columns, table.KeyColumn())
}

func build(tableName string, columns []schema.Column, primaryKey string) *BuildResult {
	res := &BuildResult{
		Definition: &Definition{
			Name:   strings.ToLower(tableName),
			Fields: make([]Field, 0, len(columns)),
		},
	}

	for _, col := range columns {
		if primaryKey != "" && col.Name == primaryKey {
			res.Definition.Fields = append(res.Definition.Fields, keyField(col.Name))
			continue
		}

		fieldType, found := MapType(col.DataType)
		if !found {
			res.Skipped = append(res.Skipped, col)
			continue
		}

		res.Definition.Fields = append(res.Definition.Fields, field(col.Name, fieldType))
	}

	return res
}

func keyField(name string) Field {
	return Field{
		Name:          name,
		Type:          StringType,
		IsKey:         true,
		IsRetrievable: true,
	}
}

func field(name string, t Type) Field {
	f := Field{
		Name:          name,
		Type:          t,
		IsRetrievable: true,
	}
	if t == StringType {
		f.IsSearchable = true
	} else {
		f.IsFilterable = true
	}
	return f
}
