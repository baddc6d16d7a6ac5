// SPDX-License-Identifier: Apache-2.0

package azure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	httplib "github.com/xataio/sqlindexer/internal/http"
	"github.com/xataio/sqlindexer/internal/json"
	"github.com/xataio/sqlindexer/internal/searchservice"
	loglib "github.com/xataio/sqlindexer/pkg/log"
)

// Client is a REST client for the Azure AI Search management endpoints
// (indexes, data sources and indexers).
type Client struct {
	client     httplib.Client
	endpoint   string
	apiKey     string
	apiVersion string
	logger     loglib.Logger
	mapper     *Mapper
}

type Option func(*Client)

const (
	apiKeyHeader          = "api-key"
	clientRequestIDHeader = "client-request-id"
	apiVersionParam       = "api-version"
	contentTypeJSON       = "application/json"
)

var (
	errMissingEndpoint = errors.New("missing search service endpoint")
	errMissingAPIKey   = errors.New("missing search service api key")
)

func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errMissingEndpoint
	}
	if cfg.APIKey == "" {
		return nil, errMissingAPIKey
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid search service endpoint: %w", err)
	}

	c := &Client{
		client:     httplib.NewClient(&httplib.Config{Timeout: cfg.RequestTimeout}),
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		apiVersion: cfg.apiVersion(),
		logger:     loglib.NewNoopLogger(),
		mapper:     NewMapper(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func WithLogger(l loglib.Logger) Option {
	return func(c *Client) {
		c.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "azure_search_client",
		})
	}
}

func WithHTTPClient(client httplib.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func (c *Client) GetMapper() searchservice.Mapper {
	return c.mapper
}

func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, resourcePath("indexes", name), nil, nil, http.StatusNoContent); err != nil {
		return fmt.Errorf("[DeleteIndex] %w", err)
	}
	return nil
}

func (c *Client) CreateIndex(ctx context.Context, index *searchservice.Index) error {
	if err := c.do(ctx, http.MethodPost, "/indexes", index, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("[CreateIndex] %w", err)
	}
	return nil
}

func (c *Client) DeleteDataSource(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, resourcePath("datasources", name), nil, nil, http.StatusNoContent); err != nil {
		return fmt.Errorf("[DeleteDataSource] %w", err)
	}
	return nil
}

func (c *Client) CreateDataSource(ctx context.Context, dataSource *searchservice.DataSource) error {
	if err := c.do(ctx, http.MethodPost, "/datasources", dataSource, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("[CreateDataSource] %w", err)
	}
	return nil
}

func (c *Client) DeleteIndexer(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, resourcePath("indexers", name), nil, nil, http.StatusNoContent); err != nil {
		return fmt.Errorf("[DeleteIndexer] %w", err)
	}
	return nil
}

func (c *Client) CreateIndexer(ctx context.Context, indexer *searchservice.Indexer) error {
	if err := c.do(ctx, http.MethodPost, "/indexers", indexer, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("[CreateIndexer] %w", err)
	}
	return nil
}

func (c *Client) RunIndexer(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodPost, resourcePath("indexers", name)+"/run", nil, nil, http.StatusAccepted); err != nil {
		return fmt.Errorf("[RunIndexer] %w", err)
	}
	return nil
}

func (c *Client) GetIndexerStatus(ctx context.Context, name string) (*searchservice.IndexerStatus, error) {
	status := &searchservice.IndexerStatus{}
	if err := c.do(ctx, http.MethodGet, resourcePath("indexers", name)+"/status", nil, status, http.StatusOK); err != nil {
		return nil, fmt.Errorf("[GetIndexerStatus] %w", err)
	}
	return status, nil
}

// do sends the request and decodes the response into out when not nil. Any
// 2xx status is accepted; wantStatus is only used for logging unexpected
// success codes.
func (c *Client) do(ctx context.Context, method, path string, in, out any, wantStatus int) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}

	requestID := req.Header.Get(clientRequestIDHeader)
	c.logger.Trace("sending search service request", loglib.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := searchservice.IsErrResponse(resp); err != nil {
		return err
	}

	if resp.StatusCode != wantStatus {
		c.logger.Debug("unexpected search service success status", loglib.Fields{
			"method":      method,
			"path":        path,
			"request_id":  requestID,
			"status_code": resp.StatusCode,
			"want_status": wantStatus,
		})
	}

	if out == nil {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.endpoint, path, url.Values{apiVersionParam: []string{c.apiVersion}}.Encode())
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(clientRequestIDHeader, uuid.NewString())

	return req, nil
}

func resourcePath(collection, name string) string {
	return fmt.Sprintf("/%s/%s", collection, url.PathEscape(name))
}
