// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"

	masker "github.com/ggwhite/go-masker"
	"github.com/tidwall/sjson"
	"github.com/xataio/sqlindexer/internal/json"
	"github.com/xataio/sqlindexer/internal/searchservice"
	"github.com/xataio/sqlindexer/pkg/index"
	"github.com/xataio/sqlindexer/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Plan holds the requests a provisioning run would submit for the current
// table schema.
type Plan struct {
	Table      string                    `json:"table" yaml:"table"`
	Index      *searchservice.Index      `json:"index" yaml:"index"`
	DataSource *searchservice.DataSource `json:"dataSource" yaml:"dataSource"`
	Indexer    *searchservice.Indexer    `json:"indexer" yaml:"indexer"`
	// SkippedColumns lists the columns left out of the index because their
	// data type is not supported.
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty" yaml:"skippedColumns,omitempty"`
	// IgnoredKeyColumns lists the trailing columns of a composite primary key.
	IgnoredKeyColumns []string `json:"ignoredKeyColumns,omitempty" yaml:"ignoredKeyColumns,omitempty"`
	SupportedTypes    []string `json:"supportedTypes,omitempty" yaml:"supportedTypes,omitempty"`
}

type SkippedColumn struct {
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"dataType" yaml:"dataType"`
}

const connectionStringPath = "dataSource.credentials.connectionString"

func newPlan(table *schema.Table, res *index.BuildResult, idx *searchservice.Index, ds *searchservice.DataSource, indexer *searchservice.Indexer) *Plan {
	p := &Plan{
		Table:             table.QualifiedName(),
		Index:             idx,
		DataSource:        ds,
		Indexer:           indexer,
		IgnoredKeyColumns: table.IgnoredKeyColumns(),
	}
	for _, col := range res.Skipped {
		p.SkippedColumns = append(p.SkippedColumns, SkippedColumn{Name: col.Name, DataType: col.DataType})
	}
	if len(p.SkippedColumns) > 0 {
		p.SupportedTypes = index.SupportedTypes()
	}
	return p
}

// JSON returns the indented JSON document for the plan, with the data source
// connection string masked.
func (p *Plan) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling plan: %w", err)
	}
	if p.DataSource == nil {
		return b, nil
	}
	b, err = sjson.SetBytes(b, connectionStringPath, maskConnectionString(p.DataSource.Credentials.ConnectionString))
	if err != nil {
		return nil, fmt.Errorf("masking plan connection string: %w", err)
	}
	return b, nil
}

// YAML returns the YAML document for the plan, with the data source
// connection string masked.
func (p *Plan) YAML() ([]byte, error) {
	masked := *p
	if p.DataSource != nil {
		ds := *p.DataSource
		ds.Credentials.ConnectionString = maskConnectionString(ds.Credentials.ConnectionString)
		masked.DataSource = &ds
	}
	b, err := yaml.Marshal(&masked)
	if err != nil {
		return nil, fmt.Errorf("marshaling plan: %w", err)
	}
	return b, nil
}

func maskConnectionString(s string) string {
	return masker.New().Password(s)
}
