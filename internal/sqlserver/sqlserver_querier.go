// SPDX-License-Identifier: Apache-2.0

package sqlserver

import "context"

type Querier interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type mappedRows struct {
	Rows
}

func (mr *mappedRows) Scan(dest ...any) error {
	return mapError(mr.Rows.Scan(dest...))
}

func (mr *mappedRows) Err() error {
	return mapError(mr.Rows.Err())
}
