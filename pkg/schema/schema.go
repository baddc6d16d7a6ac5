// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"errors"
	"fmt"
)

// Column describes a source table column, as reported by the database
// catalog.
type Column struct {
	Name     string
	DataType string
}

type Table struct {
	Schema  string
	Name    string
	Columns []Column
	// PrimaryKey holds the primary key column names ordered by their position
	// in the key. Empty if the table has no primary key.
	PrimaryKey []string
}

// Reader retrieves table metadata from a relational database.
type Reader interface {
	ReadTable(ctx context.Context, schemaName, tableName string) (*Table, error)
	Close() error
}

var ErrTableNotFound = errors.New("table not found")

// KeyColumn returns the column used as the document key. Only one key column
// is supported, so the first column of a composite key is used.
func (t *Table) KeyColumn() string {
	if t == nil || len(t.PrimaryKey) == 0 {
		return ""
	}
	return t.PrimaryKey[0]
}

// IgnoredKeyColumns returns the primary key columns that are not used as the
// document key.
func (t *Table) IgnoredKeyColumns() []string {
	if t == nil || len(t.PrimaryKey) < 2 {
		return nil
	}
	return t.PrimaryKey[1:]
}

// QualifiedName returns the bracket quoted schema qualified name of the
// table, e.g. [SalesLT].[Product].
func (t *Table) QualifiedName() string {
	return QualifiedName(t.Schema, t.Name)
}

func QualifiedName(schemaName, tableName string) string {
	return fmt.Sprintf("[%s].[%s]", schemaName, tableName)
}
