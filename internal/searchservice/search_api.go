// SPDX-License-Identifier: Apache-2.0

package searchservice

import "time"

// Index is the body of a create index request. Every capability flag is
// serialised so that service side defaults never apply.
type Index struct {
	Name   string       `json:"name" yaml:"name"`
	Fields []IndexField `json:"fields" yaml:"fields"`
}

type IndexField struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Key         bool   `json:"key" yaml:"key"`
	Searchable  bool   `json:"searchable" yaml:"searchable"`
	Filterable  bool   `json:"filterable" yaml:"filterable"`
	Retrievable bool   `json:"retrievable" yaml:"retrievable"`
}

const AzureSQLDataSourceType = "azuresql"

type DataSource struct {
	Name        string                `json:"name" yaml:"name"`
	Type        string                `json:"type" yaml:"type"`
	Credentials DataSourceCredentials `json:"credentials" yaml:"credentials"`
	Container   DataSourceContainer   `json:"container" yaml:"container"`
}

type DataSourceCredentials struct {
	ConnectionString string `json:"connectionString" yaml:"connectionString"`
}

type DataSourceContainer struct {
	Name string `json:"name" yaml:"name"`
}

type Indexer struct {
	Name            string `json:"name" yaml:"name"`
	DataSourceName  string `json:"dataSourceName" yaml:"dataSourceName"`
	TargetIndexName string `json:"targetIndexName" yaml:"targetIndexName"`
}

// Indexer and execution status values reported by the service.
const (
	IndexerStatusUnknown = "unknown"
	IndexerStatusError   = "error"
	IndexerStatusRunning = "running"

	ExecutionStatusInProgress       = "inProgress"
	ExecutionStatusSuccess          = "success"
	ExecutionStatusTransientFailure = "transientFailure"
	ExecutionStatusReset            = "reset"
)

type IndexerStatus struct {
	Status           string            `json:"status"`
	LastResult       *ExecutionResult  `json:"lastResult"`
	ExecutionHistory []ExecutionResult `json:"executionHistory"`
	Limits           Limits            `json:"limits"`
}

type ExecutionResult struct {
	Status               string        `json:"status"`
	ErrorMessage         *string       `json:"errorMessage"`
	StartTime            *time.Time    `json:"startTime"`
	EndTime              *time.Time    `json:"endTime"`
	Errors               []ItemError   `json:"errors"`
	Warnings             []ItemWarning `json:"warnings"`
	ItemsProcessed       int           `json:"itemsProcessed"`
	ItemsFailed          int           `json:"itemsFailed"`
	InitialTrackingState *string       `json:"initialTrackingState"`
	FinalTrackingState   *string       `json:"finalTrackingState"`
}

type ItemError struct {
	Key               string  `json:"key"`
	ErrorMessage      string  `json:"errorMessage"`
	StatusCode        int     `json:"statusCode"`
	Name              *string `json:"name"`
	Details           *string `json:"details"`
	DocumentationLink *string `json:"documentationLink"`
}

type ItemWarning struct {
	Key               string  `json:"key"`
	Message           string  `json:"message"`
	Name              *string `json:"name"`
	Details           *string `json:"details"`
	DocumentationLink *string `json:"documentationLink"`
}

type Limits struct {
	MaxRunTime                            string `json:"maxRunTime"`
	MaxDocumentExtractionSize             int64  `json:"maxDocumentExtractionSize"`
	MaxDocumentContentCharactersToExtract int64  `json:"maxDocumentContentCharactersToExtract"`
}

// IsRunning returns true while the last execution has not completed.
func (s *IndexerStatus) IsRunning() bool {
	return s != nil && s.LastResult != nil && s.LastResult.Status == ExecutionStatusInProgress
}

// Duration returns the elapsed time of a completed execution, or zero.
func (r *ExecutionResult) Duration() time.Duration {
	if r == nil || r.StartTime == nil || r.EndTime == nil {
		return 0
	}
	return r.EndTime.Sub(*r.StartTime)
}
