// SPDX-License-Identifier: Apache-2.0

package sqlserver

import (
	"context"
	"fmt"

	sqllib "github.com/xataio/sqlindexer/internal/sqlserver"
	loglib "github.com/xataio/sqlindexer/pkg/log"
	"github.com/xataio/sqlindexer/pkg/schema"
)

// Reader reads table metadata from the SQL Server INFORMATION_SCHEMA views.
type Reader struct {
	querier sqllib.Querier
	logger  loglib.Logger
}

type Config struct {
	ConnectionString string
}

type Option func(*Reader)

const (
	columnsQuery = `SELECT COLUMN_NAME, DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
ORDER BY ORDINAL_POSITION`

	primaryKeyQuery = `SELECT KCU.COLUMN_NAME
FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS AS TC
INNER JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE AS KCU
	ON TC.CONSTRAINT_SCHEMA = KCU.CONSTRAINT_SCHEMA AND TC.CONSTRAINT_NAME = KCU.CONSTRAINT_NAME
WHERE TC.TABLE_SCHEMA = @p1 AND TC.TABLE_NAME = @p2 AND TC.CONSTRAINT_TYPE = 'PRIMARY KEY'
ORDER BY KCU.ORDINAL_POSITION`
)

// NewReader opens a connection to the database in the config. The caller is
// responsible for closing the reader.
func NewReader(ctx context.Context, cfg *Config, opts ...Option) (*Reader, error) {
	conn, err := sqllib.NewConn(ctx, cfg.ConnectionString)
	if err != nil {
		return nil, err
	}
	return newReader(conn, opts...), nil
}

func newReader(querier sqllib.Querier, opts ...Option) *Reader {
	r := &Reader{
		querier: querier,
		logger:  loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithLogger(l loglib.Logger) Option {
	return func(r *Reader) {
		r.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "schema_reader",
		})
	}
}

// ReadTable returns the columns, in ordinal order, and the primary key of the
// table on input. It returns schema.ErrTableNotFound if the table has no
// visible columns.
func (r *Reader) ReadTable(ctx context.Context, schemaName, tableName string) (*schema.Table, error) {
	columns, err := r.readColumns(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("reading columns for %s: %w", schema.QualifiedName(schemaName, tableName), err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", schema.ErrTableNotFound, schema.QualifiedName(schemaName, tableName))
	}

	primaryKey, err := r.readPrimaryKey(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("reading primary key for %s: %w", schema.QualifiedName(schemaName, tableName), err)
	}

	r.logger.Debug("table schema read", loglib.Fields{
		"schema":      schemaName,
		"table":       tableName,
		"columns":     len(columns),
		"primary_key": primaryKey,
	})

	return &schema.Table{
		Schema:     schemaName,
		Name:       tableName,
		Columns:    columns,
		PrimaryKey: primaryKey,
	}, nil
}

func (r *Reader) Close() error {
	return r.querier.Close()
}

func (r *Reader) readColumns(ctx context.Context, schemaName, tableName string) ([]schema.Column, error) {
	rows, err := r.querier.Query(ctx, columnsQuery, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []schema.Column{}
	for rows.Next() {
		col := schema.Column{}
		if err := rows.Scan(&col.Name, &col.DataType); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func (r *Reader) readPrimaryKey(ctx context.Context, schemaName, tableName string) ([]string, error) {
	rows, err := r.querier.Query(ctx, primaryKeyQuery, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var primaryKey []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning primary key column: %w", err)
		}
		primaryKey = append(primaryKey, name)
	}

	return primaryKey, rows.Err()
}
