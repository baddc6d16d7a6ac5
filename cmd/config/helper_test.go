// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xataio/sqlindexer/internal/searchservice/azure"
	"github.com/xataio/sqlindexer/pkg/otel"
	"github.com/xataio/sqlindexer/pkg/provision"
)

const testConnectionString = "Server=tcp:sqlindexer.database.windows.net,1433;Database=sampledb;User ID=admin;Password=secret;Encrypt=true"

// validateTestConfig validates the configuration produced from the test
// configuration files in the test directory.
func validateTestConfig(t *testing.T, cfg *Config) {
	wantConfig := &Config{
		Provision: provision.Config{
			TableName:        "Product",
			SchemaName:       "SalesLT",
			ConnectionString: testConnectionString,
			DataSourceName:   "productdb",
			IndexerName:      "productindexer",
			Wait: provision.WaitConfig{
				Enabled:    true,
				Interval:   10 * time.Second,
				MaxRetries: 60,
			},
		},
		Search: azure.Config{
			Endpoint:       "https://sqlindexer.search.windows.net",
			APIKey:         "test-api-key",
			APIVersion:     "2024-07-01",
			RequestTimeout: 30 * time.Second,
		},
		Instrumentation: otel.Config{
			Metrics: &otel.MetricsConfig{
				Endpoint:           "localhost:4317",
				CollectionInterval: 60 * time.Second,
			},
			Traces: &otel.TracesConfig{
				Endpoint:    "localhost:4317",
				SampleRatio: 0.5,
			},
		},
	}

	require.Equal(t, wantConfig, cfg)
}
