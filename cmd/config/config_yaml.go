// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/xataio/sqlindexer/internal/searchservice/azure"
	"github.com/xataio/sqlindexer/pkg/otel"
	"github.com/xataio/sqlindexer/pkg/provision"
)

type YAMLConfig struct {
	Source          SourceConfig           `mapstructure:"source" yaml:"source"`
	Search          SearchConfig           `mapstructure:"search" yaml:"search"`
	Wait            WaitConfig             `mapstructure:"wait" yaml:"wait"`
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation" yaml:"instrumentation"`
}

type SourceConfig struct {
	SQLServer SQLServerConfig `mapstructure:"sqlserver" yaml:"sqlserver"`
}

type SQLServerConfig struct {
	ConnectionString string `mapstructure:"connection_string" yaml:"connection_string"`
	Schema           string `mapstructure:"schema" yaml:"schema"`
	Table            string `mapstructure:"table" yaml:"table"`
}

type SearchConfig struct {
	Azure          AzureConfig `mapstructure:"azure" yaml:"azure"`
	DataSourceName string      `mapstructure:"data_source_name" yaml:"data_source_name"`
	IndexerName    string      `mapstructure:"indexer_name" yaml:"indexer_name"`
}

type AzureConfig struct {
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key"`
	APIVersion string `mapstructure:"api_version" yaml:"api_version"`
	// RequestTimeout is in seconds, 0 disables it
	RequestTimeout int `mapstructure:"request_timeout" yaml:"request_timeout"`
}

type WaitConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Interval is in seconds
	Interval   int  `mapstructure:"interval" yaml:"interval"`
	MaxRetries uint `mapstructure:"max_retries" yaml:"max_retries"`
}

type InstrumentationConfig struct {
	Metrics *MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Traces  *TracesConfig  `mapstructure:"traces" yaml:"traces"`
}

type MetricsConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// CollectionInterval is in seconds
	CollectionInterval int `mapstructure:"collection_interval" yaml:"collection_interval"`
}

type TracesConfig struct {
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio" yaml:"sample_ratio"`
}

func (c *YAMLConfig) toConfig() (*Config, error) {
	otelCfg, err := c.Instrumentation.toOtelConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Provision: provision.Config{
			TableName:        c.Source.SQLServer.Table,
			SchemaName:       c.Source.SQLServer.Schema,
			ConnectionString: c.Source.SQLServer.ConnectionString,
			DataSourceName:   c.Search.DataSourceName,
			IndexerName:      c.Search.IndexerName,
			Wait: provision.WaitConfig{
				Enabled:    c.Wait.Enabled,
				Interval:   time.Duration(c.Wait.Interval) * time.Second,
				MaxRetries: c.Wait.MaxRetries,
			},
		},
		Search: azure.Config{
			Endpoint:       c.Search.Azure.Endpoint,
			APIKey:         c.Search.Azure.APIKey,
			APIVersion:     c.Search.Azure.APIVersion,
			RequestTimeout: time.Duration(c.Search.Azure.RequestTimeout) * time.Second,
		},
		Instrumentation: otelCfg,
	}, nil
}

func (c *InstrumentationConfig) toOtelConfig() (otel.Config, error) {
	cfg := otel.Config{}
	if c == nil {
		return cfg, nil
	}

	if c.Metrics != nil {
		cfg.Metrics = &otel.MetricsConfig{
			Endpoint:           c.Metrics.Endpoint,
			CollectionInterval: time.Duration(c.Metrics.CollectionInterval) * time.Second,
		}
	}

	if c.Traces != nil {
		if err := validateSampleRatio(c.Traces.SampleRatio); err != nil {
			return otel.Config{}, err
		}
		cfg.Traces = &otel.TracesConfig{
			Endpoint:    c.Traces.Endpoint,
			SampleRatio: c.Traces.SampleRatio,
		}
	}

	return cfg, nil
}
