// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "yaml", file: "test/test_config.yaml"},
		{name: "env", file: "test/test_config.env"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			require.NoError(t, LoadFile(tc.file))

			cfg, err := ParseConfig()
			require.NoError(t, err)
			validateTestConfig(t, cfg)
			require.NoError(t, cfg.ValidateSource())
			require.NoError(t, cfg.ValidateSearch())
		})
	}
}

func TestParseConfig_envVars(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.AutomaticEnv()

	t.Setenv("SQLINDEXER_SQLSERVER_TABLE", "Product")
	t.Setenv("SQLINDEXER_SQLSERVER_SCHEMA", "SalesLT")
	t.Setenv("SQLINDEXER_SQLSERVER_CONNECTION_STRING", testConnectionString)
	t.Setenv("SQLINDEXER_SEARCH_ENDPOINT", "https://sqlindexer.search.windows.net")
	t.Setenv("SQLINDEXER_SEARCH_API_KEY", "test-api-key")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	require.Equal(t, "Product", cfg.Provision.TableName)
	require.Equal(t, "SalesLT", cfg.Provision.SchemaName)
	require.Equal(t, testConnectionString, cfg.Provision.ConnectionString)
	require.Equal(t, "https://sqlindexer.search.windows.net", cfg.Search.Endpoint)
	require.Equal(t, "test-api-key", cfg.Search.APIKey)
	// optional settings left to their component defaults
	require.Empty(t, cfg.Provision.DataSourceName)
	require.Empty(t, cfg.Search.APIVersion)
	require.False(t, cfg.Provision.Wait.Enabled)
	require.False(t, cfg.Instrumentation.IsEnabled())
}

func TestLoadFile_unsupportedFormat(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	require.ErrorIs(t, LoadFile("config.json"), errUnsupportedConfigFormat)
	require.Error(t, LoadFile("test/missing.yaml"))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := &Config{}

	err := cfg.ValidateSource()
	require.ErrorIs(t, err, ErrMissingTableName)
	require.ErrorIs(t, err, ErrMissingSchemaName)
	require.ErrorIs(t, err, ErrMissingConnectionString)

	err = cfg.ValidateSearch()
	require.ErrorIs(t, err, ErrMissingServiceEndpoint)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestInstrumentationConfig_toOtelConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config *InstrumentationConfig

		wantEnabled bool
		wantErr     error
	}{
		{
			name: "disabled",
		},
		{
			name: "metrics only",
			config: &InstrumentationConfig{
				Metrics: &MetricsConfig{Endpoint: "localhost:4317"},
			},
			wantEnabled: true,
		},
		{
			name: "err - invalid trace sample ratio",
			config: &InstrumentationConfig{
				Traces: &TracesConfig{
					Endpoint:    "localhost:4317",
					SampleRatio: 1.5,
				},
			},
			wantErr: errInvalidSampleRatio,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := tc.config.toOtelConfig()
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.wantEnabled, cfg.IsEnabled())
		})
	}
}
