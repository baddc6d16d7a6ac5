// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/spf13/viper"
	"github.com/xataio/sqlindexer/internal/searchservice/azure"
	"github.com/xataio/sqlindexer/pkg/otel"
	"github.com/xataio/sqlindexer/pkg/provision"
)

func envConfigToConfig() (*Config, error) {
	otelCfg, err := envToOtelConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Provision:       parseProvisionConfig(),
		Search:          parseSearchConfig(),
		Instrumentation: otelCfg,
	}, nil
}

func parseProvisionConfig() provision.Config {
	return provision.Config{
		TableName:        viper.GetString("SQLINDEXER_SQLSERVER_TABLE"),
		SchemaName:       viper.GetString("SQLINDEXER_SQLSERVER_SCHEMA"),
		ConnectionString: viper.GetString("SQLINDEXER_SQLSERVER_CONNECTION_STRING"),
		DataSourceName:   viper.GetString("SQLINDEXER_SEARCH_DATA_SOURCE_NAME"),
		IndexerName:      viper.GetString("SQLINDEXER_SEARCH_INDEXER_NAME"),
		Wait: provision.WaitConfig{
			Enabled:    viper.GetBool("SQLINDEXER_WAIT_ENABLED"),
			Interval:   viper.GetDuration("SQLINDEXER_WAIT_INTERVAL"),
			MaxRetries: viper.GetUint("SQLINDEXER_WAIT_MAX_RETRIES"),
		},
	}
}

func parseSearchConfig() azure.Config {
	return azure.Config{
		Endpoint:       viper.GetString("SQLINDEXER_SEARCH_ENDPOINT"),
		APIKey:         viper.GetString("SQLINDEXER_SEARCH_API_KEY"),
		APIVersion:     viper.GetString("SQLINDEXER_SEARCH_API_VERSION"),
		RequestTimeout: viper.GetDuration("SQLINDEXER_SEARCH_REQUEST_TIMEOUT"),
	}
}

func envToOtelConfig() (otel.Config, error) {
	cfg := otel.Config{}

	if metricsEndpoint := viper.GetString("SQLINDEXER_METRICS_ENDPOINT"); metricsEndpoint != "" {
		cfg.Metrics = &otel.MetricsConfig{
			Endpoint:           metricsEndpoint,
			CollectionInterval: viper.GetDuration("SQLINDEXER_METRICS_COLLECTION_INTERVAL"),
		}
	}

	if tracesEndpoint := viper.GetString("SQLINDEXER_TRACES_ENDPOINT"); tracesEndpoint != "" {
		sampleRatio := viper.GetFloat64("SQLINDEXER_TRACES_SAMPLE_RATIO")
		if err := validateSampleRatio(sampleRatio); err != nil {
			return otel.Config{}, err
		}
		cfg.Traces = &otel.TracesConfig{
			Endpoint:    tracesEndpoint,
			SampleRatio: sampleRatio,
		}
	}

	return cfg, nil
}
