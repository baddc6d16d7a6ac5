// SPDX-License-Identifier: Apache-2.0

package index

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/xataio/sqlindexer/pkg/schema"
)

// Property-based tests for the index definition builder. Random column sets
// mixing supported and unsupported data types are generated and the
// invariants of the resulting definition are checked.

var unsupportedTypes = []string{"xml", "varbinary", "image", "geography", "hierarchyid", "sql_variant", "time", "uniqueidentifer"}

func genColumns(t *rapid.T) []schema.Column {
	dataTypes := append(SupportedTypes(), unsupportedTypes...)
	n := rapid.IntRange(0, 20).Draw(t, "columnCount")
	columns := make([]schema.Column, 0, n)
	for i := 0; i < n; i++ {
		columns = append(columns, schema.Column{
			// column names are unique within a table
			Name:     fmt.Sprintf("col_%d", i),
			DataType: rapid.SampledFrom(dataTypes).Draw(t, "dataType"),
		})
	}
	return columns
}

func genPrimaryKey(t *rapid.T, columns []schema.Column) string {
	if len(columns) == 0 || rapid.Bool().Draw(t, "noPrimaryKey") {
		return ""
	}
	return rapid.SampledFrom(columns).Draw(t, "primaryKey").Name
}

// TestBuild_SingleStringKey verifies that a primary key naming an input
// column always yields exactly one key field, typed String.
func TestBuild_SingleStringKey(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		columns := genColumns(t)
		pk := genPrimaryKey(t, columns)

		def := Build("Table", columns, pk)

		if pk == "" {
			if def.KeyFieldCount() != 0 {
				t.Fatalf("expected no key field without a primary key, got %d", def.KeyFieldCount())
			}
			return
		}
		if def.KeyFieldCount() != 1 {
			t.Fatalf("expected exactly one key field, got %d", def.KeyFieldCount())
		}
		key := def.KeyField()
		if key.Name != pk || key.Type != StringType || !key.IsRetrievable {
			t.Fatalf("unexpected key field: %+v", key)
		}
	})
}

// TestBuild_UnmappedColumnsExcluded verifies that a non key column with an
// unsupported data type never makes it to the definition.
func TestBuild_UnmappedColumnsExcluded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		columns := genColumns(t)
		pk := genPrimaryKey(t, columns)

		def := Build("Table", columns, pk)

		included := make(map[string]bool, len(def.Fields))
		for _, f := range def.Fields {
			included[f.Name] = true
		}
		for _, col := range columns {
			_, mappable := MapType(col.DataType)
			switch {
			case col.Name == pk && !included[col.Name]:
				t.Fatalf("primary key column %q missing", col.Name)
			case col.Name != pk && mappable != included[col.Name]:
				t.Fatalf("column %q (%s): mappable=%t included=%t", col.Name, col.DataType, mappable, included[col.Name])
			}
		}
	})
}

// TestBuild_PreservesOrderAndFlags verifies fields keep the input column
// order and carry the capability flags derived from their final type.
func TestBuild_PreservesOrderAndFlags(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		columns := genColumns(t)
		pk := genPrimaryKey(t, columns)

		def := Build("Table", columns, pk)

		position := make(map[string]int, len(columns))
		for i, col := range columns {
			position[col.Name] = i
		}
		last := -1
		for _, f := range def.Fields {
			if position[f.Name] <= last {
				t.Fatalf("field %q out of order", f.Name)
			}
			last = position[f.Name]

			if !f.IsRetrievable {
				t.Fatalf("field %q is not retrievable", f.Name)
			}
			if f.IsKey {
				if f.IsSearchable || f.IsFilterable {
					t.Fatalf("key field %q must not be searchable or filterable", f.Name)
				}
				continue
			}
			if f.IsSearchable != (f.Type == StringType) || f.IsFilterable == f.IsSearchable {
				t.Fatalf("field %q (%s): searchable=%t filterable=%t", f.Name, f.Type, f.IsSearchable, f.IsFilterable)
			}
		}
	})
}
