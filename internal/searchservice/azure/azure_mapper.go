// SPDX-License-Identifier: Apache-2.0

package azure

import (
	"fmt"

	"github.com/xataio/sqlindexer/internal/searchservice"
	"github.com/xataio/sqlindexer/pkg/index"
)

// Mapper renders semantic index types as Azure AI Search Entity Data Model
// (Edm) types.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

func (m *Mapper) FieldType(t index.Type) (string, error) {
	switch t {
	case index.BooleanType:
		return "Edm.Boolean", nil
	case index.Int32Type:
		return "Edm.Int32", nil
	case index.Int64Type:
		return "Edm.Int64", nil
	case index.DoubleType:
		return "Edm.Double", nil
	case index.StringType:
		return "Edm.String", nil
	case index.DateTimeOffsetType:
		return "Edm.DateTimeOffset", nil
	default:
		return "", fmt.Errorf("%w: %v", searchservice.ErrUnsupportedFieldType, t)
	}
}
