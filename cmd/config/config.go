// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/xataio/sqlindexer/internal/searchservice/azure"
	"github.com/xataio/sqlindexer/pkg/otel"
	"github.com/xataio/sqlindexer/pkg/provision"
)

// Config is the full sqlindexer configuration, built from a .yaml file, a
// .env file or SQLINDEXER_ environment variables, with flags taking
// precedence.
type Config struct {
	Provision       provision.Config
	Search          azure.Config
	Instrumentation otel.Config
}

var (
	ErrMissingTableName        = errors.New("missing table name")
	ErrMissingSchemaName       = errors.New("missing schema name")
	ErrMissingConnectionString = errors.New("missing database connection string")
	ErrMissingServiceEndpoint  = errors.New("missing search service endpoint")
	ErrMissingAPIKey           = errors.New("missing search service api key")

	errInvalidSampleRatio      = errors.New("trace sample ratio must be between 0 and 1")
	errUnsupportedConfigFormat = errors.New("unsupported config file format, expected .env, .yaml or .yml")
)

func Load() error {
	return LoadFile(viper.GetString("config"))
}

func LoadFile(file string) error {
	if file == "" {
		return nil
	}

	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	switch ext {
	case "env", "yaml", "yml":
	default:
		return fmt.Errorf("%w: %s", errUnsupportedConfigFormat, file)
	}

	viper.SetConfigFile(file)
	viper.SetConfigType(ext)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// ParseConfig builds the configuration from the loaded config file format.
// Environment variables are used when no yaml file was loaded.
func ParseConfig() (*Config, error) {
	switch filepath.Ext(viper.GetViper().ConfigFileUsed()) {
	case ".yml", ".yaml":
		yamlCfg := YAMLConfig{}
		if err := viper.Unmarshal(&yamlCfg); err != nil {
			return nil, fmt.Errorf("unmarshaling yaml config: %w", err)
		}
		return yamlCfg.toConfig()
	default:
		return envConfigToConfig()
	}
}

// ValidateSource checks the settings needed to read the table schema.
func (c *Config) ValidateSource() error {
	var errs error
	if c.Provision.TableName == "" {
		errs = errors.Join(errs, ErrMissingTableName)
	}
	if c.Provision.SchemaName == "" {
		errs = errors.Join(errs, ErrMissingSchemaName)
	}
	if c.Provision.ConnectionString == "" {
		errs = errors.Join(errs, ErrMissingConnectionString)
	}
	return errs
}

// ValidateSearch checks the settings needed to call the search service.
func (c *Config) ValidateSearch() error {
	var errs error
	if c.Search.Endpoint == "" {
		errs = errors.Join(errs, ErrMissingServiceEndpoint)
	}
	if c.Search.APIKey == "" {
		errs = errors.Join(errs, ErrMissingAPIKey)
	}
	return errs
}

func validateSampleRatio(ratio float64) error {
	if ratio < 0 || ratio > 1 {
		return errInvalidSampleRatio
	}
	return nil
}
