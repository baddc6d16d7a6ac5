// SPDX-License-Identifier: Apache-2.0

package instrumentation

import (
	"context"
	"errors"
	"fmt"

	"github.com/xataio/sqlindexer/internal/searchservice"
	"github.com/xataio/sqlindexer/pkg/otel"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a search service client with a span per call and a request
// counter by operation and outcome.
type Client struct {
	inner    searchservice.Client
	tracer   trace.Tracer
	requests metric.Int64Counter
}

const (
	operationAttr = "operation"
	outcomeAttr   = "outcome"
	resourceAttr  = "resource"

	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

func NewClient(inner searchservice.Client, instrumentation *otel.Instrumentation) (searchservice.Client, error) {
	if !instrumentation.IsEnabled() {
		return inner, nil
	}

	c := &Client{
		inner:  inner,
		tracer: instrumentation.Tracer,
	}

	if instrumentation.Meter != nil {
		var err error
		c.requests, err = instrumentation.Meter.Int64Counter("sqlindexer.search.requests",
			metric.WithUnit("requests"),
			metric.WithDescription("Count of search service requests by operation and outcome"))
		if err != nil {
			return nil, fmt.Errorf("error initialising search client metrics: %w", err)
		}
	}

	return c, nil
}

func (c *Client) DeleteIndex(ctx context.Context, name string) (err error) {
	ctx, done := c.start(ctx, "DeleteIndex", name)
	defer func() { done(err) }()
	return c.inner.DeleteIndex(ctx, name)
}

func (c *Client) CreateIndex(ctx context.Context, index *searchservice.Index) (err error) {
	ctx, done := c.start(ctx, "CreateIndex", index.Name, attribute.Int("fields", len(index.Fields)))
	defer func() { done(err) }()
	return c.inner.CreateIndex(ctx, index)
}

func (c *Client) DeleteDataSource(ctx context.Context, name string) (err error) {
	ctx, done := c.start(ctx, "DeleteDataSource", name)
	defer func() { done(err) }()
	return c.inner.DeleteDataSource(ctx, name)
}

func (c *Client) CreateDataSource(ctx context.Context, dataSource *searchservice.DataSource) (err error) {
	ctx, done := c.start(ctx, "CreateDataSource", dataSource.Name, attribute.String("container", dataSource.Container.Name))
	defer func() { done(err) }()
	return c.inner.CreateDataSource(ctx, dataSource)
}

func (c *Client) DeleteIndexer(ctx context.Context, name string) (err error) {
	ctx, done := c.start(ctx, "DeleteIndexer", name)
	defer func() { done(err) }()
	return c.inner.DeleteIndexer(ctx, name)
}

func (c *Client) CreateIndexer(ctx context.Context, indexer *searchservice.Indexer) (err error) {
	ctx, done := c.start(ctx, "CreateIndexer", indexer.Name, attribute.String("target_index", indexer.TargetIndexName))
	defer func() { done(err) }()
	return c.inner.CreateIndexer(ctx, indexer)
}

func (c *Client) RunIndexer(ctx context.Context, name string) (err error) {
	ctx, done := c.start(ctx, "RunIndexer", name)
	defer func() { done(err) }()
	return c.inner.RunIndexer(ctx, name)
}

func (c *Client) GetIndexerStatus(ctx context.Context, name string) (status *searchservice.IndexerStatus, err error) {
	ctx, done := c.start(ctx, "GetIndexerStatus", name)
	defer func() { done(err) }()
	return c.inner.GetIndexerStatus(ctx, name)
}

func (c *Client) GetMapper() searchservice.Mapper {
	return c.inner.GetMapper()
}

func (c *Client) start(ctx context.Context, operation, resource string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	attrs = append(attrs, attribute.String(resourceAttr, resource))
	ctx, span := otel.StartSpan(ctx, c.tracer, "searchservice."+operation, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		otel.CloseSpan(span, err)
		if c.requests != nil {
			c.requests.Add(ctx, 1, metric.WithAttributes(
				attribute.String(operationAttr, operation),
				attribute.String(outcomeAttr, outcome(err)),
			))
		}
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, searchservice.ErrResourceNotFound):
		return outcomeNotFound
	case errors.Is(err, searchservice.ErrResourceConflict):
		return outcomeConflict
	default:
		return outcomeError
	}
}
