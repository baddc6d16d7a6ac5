// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/xataio/sqlindexer/internal/sqlserver"
)

type Querier struct {
	QueryFn func(ctx context.Context, i uint, query string, args ...any) (sqlserver.Rows, error)
	PingFn  func(context.Context) error
	CloseFn func() error

	queryCalls uint
	closeCalls uint
}

func (m *Querier) Query(ctx context.Context, query string, args ...any) (sqlserver.Rows, error) {
	m.queryCalls++
	return m.QueryFn(ctx, m.queryCalls, query, args...)
}

func (m *Querier) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

func (m *Querier) Close() error {
	m.closeCalls++
	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}

func (m *Querier) GetCloseCalls() uint {
	return m.closeCalls
}
