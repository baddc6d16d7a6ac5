// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"errors"
	"strings"
	"time"

	"github.com/xataio/sqlindexer/internal/backoff"
)

type Config struct {
	TableName        string
	SchemaName       string
	ConnectionString string
	// DataSourceName and IndexerName are reused on every run, so a run
	// replaces the resources created by the previous one.
	DataSourceName string
	IndexerName    string
	Wait           WaitConfig
}

// WaitConfig controls polling of the indexer status until the last run
// completes. Disabled by default.
type WaitConfig struct {
	Enabled    bool
	Interval   time.Duration
	MaxRetries uint
}

const (
	DefaultDataSourceName = "sampledb"
	DefaultIndexerName    = "sampleindexer"

	defaultWaitInterval   = 5 * time.Second
	defaultWaitMaxRetries = 360
)

var (
	ErrMissingTableName        = errors.New("missing table name")
	ErrMissingSchemaName       = errors.New("missing schema name")
	ErrMissingConnectionString = errors.New("missing database connection string")
)

func (c *Config) validate() error {
	var errs error
	if c.TableName == "" {
		errs = errors.Join(errs, ErrMissingTableName)
	}
	if c.SchemaName == "" {
		errs = errors.Join(errs, ErrMissingSchemaName)
	}
	if c.ConnectionString == "" {
		errs = errors.Join(errs, ErrMissingConnectionString)
	}
	return errs
}

func (c *Config) indexName() string {
	return strings.ToLower(c.TableName)
}

func (c *Config) dataSourceName() string {
	if c.DataSourceName != "" {
		return c.DataSourceName
	}
	return DefaultDataSourceName
}

func (c *Config) indexerName() string {
	if c.IndexerName != "" {
		return c.IndexerName
	}
	return DefaultIndexerName
}

func (c *WaitConfig) backoffConfig() *backoff.Config {
	interval := c.Interval
	if interval <= 0 {
		interval = defaultWaitInterval
	}
	maxRetries := c.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultWaitMaxRetries
	}
	return &backoff.Config{
		Constant: &backoff.ConstantConfig{
			Interval:   interval,
			MaxRetries: maxRetries,
		},
	}
}
