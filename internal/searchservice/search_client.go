// SPDX-License-Identifier: Apache-2.0

package searchservice

import "context"

// Client manages the index, data source and indexer resources of a search
// service. Not found responses are returned as ErrResourceNotFound.
type Client interface {
	DeleteIndex(ctx context.Context, name string) error
	CreateIndex(ctx context.Context, index *Index) error
	DeleteDataSource(ctx context.Context, name string) error
	CreateDataSource(ctx context.Context, dataSource *DataSource) error
	DeleteIndexer(ctx context.Context, name string) error
	CreateIndexer(ctx context.Context, indexer *Indexer) error
	RunIndexer(ctx context.Context, name string) error
	GetIndexerStatus(ctx context.Context, name string) (*IndexerStatus, error)
	GetMapper() Mapper
}
