// SPDX-License-Identifier: Apache-2.0

package searchservice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xataio/sqlindexer/pkg/index"
)

type mapperFn func(index.Type) (string, error)

func (f mapperFn) FieldType(t index.Type) (string, error) { return f(t) }

func TestNewIndex(t *testing.T) {
	t.Parallel()

	testDef := &index.Definition{
		Name: "product",
		Fields: []index.Field{
			{Name: "ProductID", Type: index.StringType, IsKey: true, IsRetrievable: true},
			{Name: "Quantity", Type: index.Int32Type, IsFilterable: true, IsRetrievable: true},
		},
	}
	typeName := mapperFn(func(t index.Type) (string, error) {
		return fmt.Sprintf("T.%s", t), nil
	})

	tests := []struct {
		name   string
		def    *index.Definition
		mapper Mapper

		wantIndex *Index
		wantErr   error
	}{
		{
			name:   "ok",
			def:    testDef,
			mapper: typeName,

			wantIndex: &Index{
				Name: "product",
				Fields: []IndexField{
					{Name: "ProductID", Type: "T.String", Key: true, Retrievable: true},
					{Name: "Quantity", Type: "T.Int32", Filterable: true, Retrievable: true},
				},
			},
		},
		{
			name: "ok - no fields",
			def:  &index.Definition{Name: "empty"},

			wantIndex: &Index{Name: "empty", Fields: []IndexField{}},
		},
		{
			name: "error - unsupported type",
			def:  testDef,
			mapper: mapperFn(func(t index.Type) (string, error) {
				return "", ErrUnsupportedFieldType
			}),

			wantErr: ErrUnsupportedFieldType,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			idx, err := NewIndex(tc.def, tc.mapper)
			require.True(t, errors.Is(err, tc.wantErr))
			require.Equal(t, tc.wantIndex, idx)
		})
	}
}
