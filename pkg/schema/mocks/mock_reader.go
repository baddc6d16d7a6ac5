// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/xataio/sqlindexer/pkg/schema"
)

type Reader struct {
	ReadTableFn func(ctx context.Context, schemaName, tableName string) (*schema.Table, error)
	CloseFn     func() error
}

func (m *Reader) ReadTable(ctx context.Context, schemaName, tableName string) (*schema.Table, error) {
	return m.ReadTableFn(ctx, schemaName, tableName)
}

func (m *Reader) Close() error {
	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}
