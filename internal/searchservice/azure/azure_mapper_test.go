// SPDX-License-Identifier: Apache-2.0

package azure

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xataio/sqlindexer/internal/searchservice"
	"github.com/xataio/sqlindexer/pkg/index"
)

func TestMapper_FieldType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fieldType index.Type

		wantType string
		wantErr  error
	}{
		{fieldType: index.BooleanType, wantType: "Edm.Boolean"},
		{fieldType: index.Int32Type, wantType: "Edm.Int32"},
		{fieldType: index.Int64Type, wantType: "Edm.Int64"},
		{fieldType: index.DoubleType, wantType: "Edm.Double"},
		{fieldType: index.StringType, wantType: "Edm.String"},
		{fieldType: index.DateTimeOffsetType, wantType: "Edm.DateTimeOffset"},
		{fieldType: index.Type(99), wantErr: searchservice.ErrUnsupportedFieldType},
	}

	for _, tc := range tests {
		t.Run(tc.fieldType.String(), func(t *testing.T) {
			t.Parallel()

			got, err := NewMapper().FieldType(tc.fieldType)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.wantType, got)
		})
	}
}
