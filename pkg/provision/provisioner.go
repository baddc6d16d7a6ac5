// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/xid"
	"github.com/xataio/sqlindexer/internal/backoff"
	"github.com/xataio/sqlindexer/internal/progress"
	"github.com/xataio/sqlindexer/internal/searchservice"
	"github.com/xataio/sqlindexer/pkg/index"
	loglib "github.com/xataio/sqlindexer/pkg/log"
	"github.com/xataio/sqlindexer/pkg/schema"
)

// Provisioner creates the search index, data source and indexer for a SQL
// table, and starts the indexer. Every call is sequential and nothing is
// rolled back on failure.
type Provisioner struct {
	config          Config
	client          searchservice.Client
	newReader       ReaderBuilder
	logger          loglib.Logger
	clock           clockwork.Clock
	backoffProvider backoff.Provider
	newProgressBar  func(description string) progress.Bar
	mapper          searchservice.Mapper
}

// ReaderBuilder opens a schema reader. The provisioner closes it once the
// table schema has been read.
type ReaderBuilder func(ctx context.Context) (schema.Reader, error)

type Option func(*Provisioner)

// Provisioning step names, used as the step log field.
const (
	stepDeleteIndex      = "delete_index"
	stepDeleteDataSource = "delete_data_source"
	stepDeleteIndexer    = "delete_indexer"
	stepCreateIndex      = "create_index"
	stepCreateDataSource = "create_data_source"
	stepCreateIndexer    = "create_indexer"
	stepRunIndexer       = "run_indexer"
	stepIndexerStatus    = "indexer_status"
	stepWaitIndexer      = "wait_indexer"
	stepReadSchema       = "read_schema"
)

var (
	ErrWaitTimeout    = errors.New("indexer run still in progress")
	errIndexerRunning = errors.New("indexer run in progress")
)

// New returns a provisioner for the configured table. The client may be nil
// when only Plan is used and a mapper is provided with WithMapper.
func New(cfg *Config, client searchservice.Client, newReader ReaderBuilder, opts ...Option) *Provisioner {
	p := &Provisioner{
		config:          *cfg,
		client:          client,
		newReader:       newReader,
		logger:          loglib.NewNoopLogger(),
		clock:           clockwork.NewRealClock(),
		backoffProvider: backoff.NewProvider(cfg.Wait.backoffConfig()),
		newProgressBar: func(string) progress.Bar {
			return progress.NoopBar{}
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func WithLogger(l loglib.Logger) Option {
	return func(p *Provisioner) {
		p.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "provisioner",
			"schema":           p.config.SchemaName,
			"table":            p.config.TableName,
		})
	}
}

// WithProgressBar renders the indexer progress while waiting for a run to
// complete.
func WithProgressBar(newBar func(description string) progress.Bar) Option {
	return func(p *Provisioner) {
		p.newProgressBar = newBar
	}
}

// WithMapper sets the mapper used to render index field types. Defaults to
// the client mapper.
func WithMapper(m searchservice.Mapper) Option {
	return func(p *Provisioner) {
		p.mapper = m
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(p *Provisioner) {
		p.clock = c
	}
}

func withBackoffProvider(bp backoff.Provider) Option {
	return func(p *Provisioner) {
		p.backoffProvider = bp
	}
}

// Provision replaces the index, data source and indexer for the configured
// table and starts the indexer. Not found errors on the deletes are ignored.
// A conflict when starting the run is tolerated, since creating the indexer
// already starts one on the service. It returns the indexer status once the run has been started, or once it
// has completed when waiting is enabled.
func (p *Provisioner) Provision(ctx context.Context) (*searchservice.IndexerStatus, error) {
	if err := p.config.validate(); err != nil {
		return nil, err
	}
	logger := p.runLogger("provision")

	steps := []struct {
		name string
		fn   func(context.Context, loglib.Logger) error
	}{
		{name: stepDeleteIndex, fn: p.deleteIndex},
		{name: stepDeleteDataSource, fn: p.deleteDataSource},
		{name: stepDeleteIndexer, fn: p.deleteIndexer},
		{name: stepCreateIndex, fn: p.createIndex},
		{name: stepCreateDataSource, fn: p.createDataSource},
		{name: stepCreateIndexer, fn: p.createIndexer},
	}
	for _, s := range steps {
		if err := p.step(ctx, logger, s.name, s.fn); err != nil {
			return nil, err
		}
	}

	return p.run(ctx, logger)
}

// Plan reads the table schema and returns the requests a provisioning run
// would submit. No search service call is made.
func (p *Provisioner) Plan(ctx context.Context) (*Plan, error) {
	if err := p.config.validate(); err != nil {
		return nil, err
	}
	logger := p.runLogger("plan")

	var plan *Plan
	err := p.step(ctx, logger, stepReadSchema, func(ctx context.Context, logger loglib.Logger) error {
		table, res, err := p.readDefinition(ctx, logger)
		if err != nil {
			return err
		}
		idx, err := searchservice.NewIndex(res.Definition, p.getMapper())
		if err != nil {
			return err
		}
		plan = newPlan(table, res, idx, p.dataSource(), p.indexer())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Run starts the existing indexer.
func (p *Provisioner) Run(ctx context.Context) (*searchservice.IndexerStatus, error) {
	return p.run(ctx, p.runLogger("run"))
}

// Status returns the current status of the indexer.
func (p *Provisioner) Status(ctx context.Context) (*searchservice.IndexerStatus, error) {
	logger := p.runLogger("status")

	var status *searchservice.IndexerStatus
	err := p.step(ctx, logger, stepIndexerStatus, func(ctx context.Context, _ loglib.Logger) (err error) {
		status, err = p.client.GetIndexerStatus(ctx, p.config.indexerName())
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Teardown deletes the indexer, data source and index. Resources that do not
// exist are ignored.
func (p *Provisioner) Teardown(ctx context.Context) error {
	if p.config.TableName == "" {
		return ErrMissingTableName
	}
	logger := p.runLogger("teardown")

	for _, s := range []struct {
		name string
		fn   func(context.Context, loglib.Logger) error
	}{
		{name: stepDeleteIndexer, fn: p.deleteIndexer},
		{name: stepDeleteDataSource, fn: p.deleteDataSource},
		{name: stepDeleteIndex, fn: p.deleteIndex},
	} {
		if err := p.step(ctx, logger, s.name, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) run(ctx context.Context, logger loglib.Logger) (*searchservice.IndexerStatus, error) {
	if err := p.step(ctx, logger, stepRunIndexer, p.runIndexer); err != nil {
		return nil, err
	}

	var status *searchservice.IndexerStatus
	statusStep, statusFn := stepIndexerStatus, func(ctx context.Context, _ loglib.Logger) (err error) {
		status, err = p.client.GetIndexerStatus(ctx, p.config.indexerName())
		return err
	}
	if p.config.Wait.Enabled {
		statusStep, statusFn = stepWaitIndexer, func(ctx context.Context, logger loglib.Logger) (err error) {
			status, err = p.waitForCompletion(ctx, logger)
			return err
		}
	}

	if err := p.step(ctx, logger, statusStep, statusFn); err != nil {
		return status, err
	}

	p.logStatus(logger, status)
	return status, nil
}

func (p *Provisioner) deleteIndex(ctx context.Context, logger loglib.Logger) error {
	return p.ignoreNotFound(logger, "index", p.client.DeleteIndex(ctx, p.config.indexName()))
}

func (p *Provisioner) deleteDataSource(ctx context.Context, logger loglib.Logger) error {
	return p.ignoreNotFound(logger, "data source", p.client.DeleteDataSource(ctx, p.config.dataSourceName()))
}

func (p *Provisioner) deleteIndexer(ctx context.Context, logger loglib.Logger) error {
	return p.ignoreNotFound(logger, "indexer", p.client.DeleteIndexer(ctx, p.config.indexerName()))
}

func (p *Provisioner) createIndex(ctx context.Context, logger loglib.Logger) error {
	_, res, err := p.readDefinition(ctx, logger)
	if err != nil {
		return err
	}

	idx, err := searchservice.NewIndex(res.Definition, p.getMapper())
	if err != nil {
		return err
	}

	return p.client.CreateIndex(ctx, idx)
}

func (p *Provisioner) createDataSource(ctx context.Context, _ loglib.Logger) error {
	return p.client.CreateDataSource(ctx, p.dataSource())
}

func (p *Provisioner) createIndexer(ctx context.Context, _ loglib.Logger) error {
	return p.client.CreateIndexer(ctx, p.indexer())
}

func (p *Provisioner) runIndexer(ctx context.Context, logger loglib.Logger) error {
	err := p.client.RunIndexer(ctx, p.config.indexerName())
	if errors.Is(err, searchservice.ErrResourceConflict) {
		// creating an indexer starts a run, a second run request is rejected
		// while that one is in progress
		logger.Info("indexer run already in progress", loglib.Fields{
			"indexer": p.config.indexerName(),
		})
		return nil
	}
	return err
}

// readDefinition reads the table schema through a reader opened for this
// call only, and builds the index definition for it.
func (p *Provisioner) readDefinition(ctx context.Context, logger loglib.Logger) (*schema.Table, *index.BuildResult, error) {
	reader, err := p.newReader(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("opening schema reader: %w", err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			logger.Warn(closeErr, "closing schema reader")
		}
	}()

	table, err := reader.ReadTable(ctx, p.config.SchemaName, p.config.TableName)
	if err != nil {
		return nil, nil, err
	}

	res := index.BuildTable(table)

	for _, col := range res.Skipped {
		logger.Debug("column skipped, unsupported data type", loglib.Fields{
			"column":    col.Name,
			"data_type": col.DataType,
		})
	}
	if table.KeyColumn() == "" {
		logger.Warn(nil, "table has no primary key, the index will have no key field")
	}
	if ignored := table.IgnoredKeyColumns(); len(ignored) > 0 {
		logger.Warn(nil, "composite primary key, only the first column is used as the index key", loglib.Fields{
			"key_column":      table.KeyColumn(),
			"ignored_columns": ignored,
		})
	}

	return table, res, nil
}

func (p *Provisioner) waitForCompletion(ctx context.Context, logger loglib.Logger) (*searchservice.IndexerStatus, error) {
	bar := p.newProgressBar(p.progressDescription())
	defer bar.Close()

	var status *searchservice.IndexerStatus
	err := p.backoffProvider(ctx).RetryNotify(
		func() error {
			s, err := p.client.GetIndexerStatus(ctx, p.config.indexerName())
			if err != nil {
				return fmt.Errorf("%w: %w", backoff.ErrPermanent, err)
			}
			status = s
			if s.LastResult == nil {
				return errIndexerRunning
			}
			if err := bar.Set(s.LastResult.ItemsProcessed); err != nil {
				logger.Trace("progress bar update failed", loglib.Fields{"error": err.Error()})
			}
			if s.IsRunning() {
				return errIndexerRunning
			}
			return nil
		},
		func(err error, d time.Duration) {
			logger.Trace("waiting for indexer run", loglib.Fields{
				"retry_in": d.String(),
			})
		})
	switch {
	case err == nil:
		return status, nil
	case errors.Is(err, errIndexerRunning):
		return status, ErrWaitTimeout
	default:
		return status, err
	}
}

// progressDescription names the table being indexed, or the indexer when
// the table is not configured.
func (p *Provisioner) progressDescription() string {
	if p.config.TableName == "" {
		return fmt.Sprintf("indexer %s", p.config.indexerName())
	}
	return fmt.Sprintf("indexing %s", schema.QualifiedName(p.config.SchemaName, p.config.TableName))
}

func (p *Provisioner) logStatus(logger loglib.Logger, status *searchservice.IndexerStatus) {
	if status == nil || status.LastResult == nil {
		logger.Info("indexer status", loglib.Fields{"status": statusOf(status)})
		return
	}

	fields := loglib.Fields{
		"status":          status.Status,
		"last_run_status": status.LastResult.Status,
		"items_processed": status.LastResult.ItemsProcessed,
		"items_failed":    status.LastResult.ItemsFailed,
	}
	if d := status.LastResult.Duration(); d > 0 {
		fields["run_duration"] = d.String()
	}

	switch status.LastResult.Status {
	case searchservice.ExecutionStatusSuccess, searchservice.ExecutionStatusInProgress:
		logger.Info("indexer status", fields)
	default:
		var runErr error
		if status.LastResult.ErrorMessage != nil {
			runErr = errors.New(*status.LastResult.ErrorMessage)
		}
		fields["errors"] = len(status.LastResult.Errors)
		logger.Warn(runErr, "indexer run did not succeed", fields)
	}
}

func (p *Provisioner) dataSource() *searchservice.DataSource {
	return &searchservice.DataSource{
		Name: p.config.dataSourceName(),
		Type: searchservice.AzureSQLDataSourceType,
		Credentials: searchservice.DataSourceCredentials{
			ConnectionString: p.config.ConnectionString,
		},
		Container: searchservice.DataSourceContainer{
			Name: schema.QualifiedName(p.config.SchemaName, p.config.TableName),
		},
	}
}

func (p *Provisioner) indexer() *searchservice.Indexer {
	return &searchservice.Indexer{
		Name:            p.config.indexerName(),
		DataSourceName:  p.config.dataSourceName(),
		TargetIndexName: p.config.indexName(),
	}
}

// step runs fn and logs its outcome and duration.
func (p *Provisioner) step(ctx context.Context, logger loglib.Logger, name string, fn func(context.Context, loglib.Logger) error) error {
	logger = logger.WithFields(loglib.Fields{loglib.StepField: name})
	start := p.clock.Now()
	logger.Debug("step started")

	err := fn(ctx, logger)
	fields := loglib.Fields{"duration": p.clock.Since(start).String()}
	if err != nil {
		logger.Error(err, "step failed", fields)
		return fmt.Errorf("%s: %w", name, err)
	}

	logger.Info("step completed", fields)
	return nil
}

func (p *Provisioner) ignoreNotFound(logger loglib.Logger, resource string, err error) error {
	if errors.Is(err, searchservice.ErrResourceNotFound) {
		logger.Debug(resource + " not found, nothing to delete")
		return nil
	}
	return err
}

func (p *Provisioner) runLogger(operation string) loglib.Logger {
	return p.logger.WithFields(loglib.Fields{
		loglib.RunIDField: xid.New().String(),
		"operation":       operation,
	})
}

func (p *Provisioner) getMapper() searchservice.Mapper {
	if p.mapper != nil {
		return p.mapper
	}
	return p.client.GetMapper()
}

func statusOf(s *searchservice.IndexerStatus) string {
	if s == nil {
		return searchservice.IndexerStatusUnknown
	}
	return s.Status
}
