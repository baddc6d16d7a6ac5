// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/xataio/sqlindexer/internal/searchservice"
)

type Client struct {
	DeleteIndexFn      func(ctx context.Context, name string) error
	CreateIndexFn      func(ctx context.Context, index *searchservice.Index) error
	DeleteDataSourceFn func(ctx context.Context, name string) error
	CreateDataSourceFn func(ctx context.Context, dataSource *searchservice.DataSource) error
	DeleteIndexerFn    func(ctx context.Context, name string) error
	CreateIndexerFn    func(ctx context.Context, indexer *searchservice.Indexer) error
	RunIndexerFn       func(ctx context.Context, name string) error
	GetIndexerStatusFn func(ctx context.Context, i uint, name string) (*searchservice.IndexerStatus, error)
	GetMapperFn        func() searchservice.Mapper

	// calls records the name of every method invoked, in order
	calls       []string
	statusCalls uint
}

func (m *Client) DeleteIndex(ctx context.Context, name string) error {
	m.calls = append(m.calls, "DeleteIndex")
	return m.DeleteIndexFn(ctx, name)
}

func (m *Client) CreateIndex(ctx context.Context, index *searchservice.Index) error {
	m.calls = append(m.calls, "CreateIndex")
	return m.CreateIndexFn(ctx, index)
}

func (m *Client) DeleteDataSource(ctx context.Context, name string) error {
	m.calls = append(m.calls, "DeleteDataSource")
	return m.DeleteDataSourceFn(ctx, name)
}

func (m *Client) CreateDataSource(ctx context.Context, dataSource *searchservice.DataSource) error {
	m.calls = append(m.calls, "CreateDataSource")
	return m.CreateDataSourceFn(ctx, dataSource)
}

func (m *Client) DeleteIndexer(ctx context.Context, name string) error {
	m.calls = append(m.calls, "DeleteIndexer")
	return m.DeleteIndexerFn(ctx, name)
}

func (m *Client) CreateIndexer(ctx context.Context, indexer *searchservice.Indexer) error {
	m.calls = append(m.calls, "CreateIndexer")
	return m.CreateIndexerFn(ctx, indexer)
}

func (m *Client) RunIndexer(ctx context.Context, name string) error {
	m.calls = append(m.calls, "RunIndexer")
	return m.RunIndexerFn(ctx, name)
}

func (m *Client) GetIndexerStatus(ctx context.Context, name string) (*searchservice.IndexerStatus, error) {
	m.calls = append(m.calls, "GetIndexerStatus")
	m.statusCalls++
	return m.GetIndexerStatusFn(ctx, m.statusCalls, name)
}

func (m *Client) GetMapper() searchservice.Mapper {
	return m.GetMapperFn()
}

func (m *Client) GetCalls() []string {
	return m.calls
}
