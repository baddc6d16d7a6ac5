// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"

	"github.com/xataio/sqlindexer/cmd/config"
	"github.com/xataio/sqlindexer/internal/log/zerolog"
	"github.com/xataio/sqlindexer/internal/progress"
	"github.com/xataio/sqlindexer/internal/searchservice"
	"github.com/xataio/sqlindexer/internal/searchservice/azure"
	searchinstrumentation "github.com/xataio/sqlindexer/internal/searchservice/instrumentation"
	loglib "github.com/xataio/sqlindexer/pkg/log"
	"github.com/xataio/sqlindexer/pkg/otel"
	"github.com/xataio/sqlindexer/pkg/provision"
	"github.com/xataio/sqlindexer/pkg/schema"
	"github.com/xataio/sqlindexer/pkg/schema/sqlserver"
)

// provisionerRequirements lists the settings a command needs validated
// before building the provisioner.
type provisionerRequirements struct {
	source bool
	search bool
}

// provisioner bundles the provisioner with the resources that need closing
// once the command is done.
type provisioner struct {
	*provision.Provisioner
	instrumentationProvider otel.InstrumentationProvider
}

func newLogger() loglib.Logger {
	logger := zerolog.NewLogger(&zerolog.Config{
		LogLevel: viper.GetString("SQLINDEXER_LOG_LEVEL"),
		JSON:     viper.GetBool("SQLINDEXER_LOG_JSON"),
	})
	zerolog.SetGlobalLogger(logger)
	return zerolog.NewStdLogger(logger)
}

func newProvisioner(ctx context.Context, logger loglib.Logger, req provisionerRequirements, opts ...provision.Option) (*provisioner, error) {
	cfg, err := config.ParseConfig()
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	var errs error
	if req.source {
		errs = errors.Join(errs, cfg.ValidateSource())
	}
	if req.search {
		errs = errors.Join(errs, cfg.ValidateSearch())
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid configuration: %w", errs)
	}

	instrumentationProvider, err := otel.NewInstrumentationProvider(ctx, &cfg.Instrumentation)
	if err != nil {
		return nil, fmt.Errorf("creating instrumentation provider: %w", err)
	}

	var client searchservice.Client
	if req.search {
		client, err = newSearchClient(&cfg.Search, logger, instrumentationProvider.NewInstrumentation("searchservice"))
		if err != nil {
			instrumentationProvider.Close()
			return nil, err
		}
	}

	opts = append([]provision.Option{
		provision.WithLogger(logger),
		provision.WithClock(clockwork.NewRealClock()),
		provision.WithMapper(azure.NewMapper()),
	}, opts...)

	return &provisioner{
		Provisioner:             provision.New(&cfg.Provision, client, newSchemaReader(&cfg.Provision, logger), opts...),
		instrumentationProvider: instrumentationProvider,
	}, nil
}

func (p *provisioner) Close() error {
	return p.instrumentationProvider.Close()
}

func newSearchClient(cfg *azure.Config, logger loglib.Logger, instrumentation *otel.Instrumentation) (searchservice.Client, error) {
	client, err := azure.NewClient(cfg, azure.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}
	return searchinstrumentation.NewClient(client, instrumentation)
}

func newSchemaReader(cfg *provision.Config, logger loglib.Logger) provision.ReaderBuilder {
	return func(ctx context.Context) (schema.Reader, error) {
		reader, err := sqlserver.NewReader(ctx, &sqlserver.Config{
			ConnectionString: cfg.ConnectionString,
		}, sqlserver.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return reader, nil
	}
}

func newSpinnerBar(description string) progress.Bar {
	return progress.NewSpinner(description, os.Stderr)
}
