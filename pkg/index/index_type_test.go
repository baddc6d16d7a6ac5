// SPDX-License-Identifier: Apache-2.0

package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		wantType  Type
		wantFound bool
	}{
		"bit":              {wantType: BooleanType, wantFound: true},
		"int":              {wantType: Int32Type, wantFound: true},
		"smallint":         {wantType: Int32Type, wantFound: true},
		"tinyint":          {wantType: Int32Type, wantFound: true},
		"bigint":           {wantType: Int64Type, wantFound: true},
		"real":             {wantType: DoubleType, wantFound: true},
		"float":            {wantType: DoubleType, wantFound: true},
		"smallmoney":       {wantType: StringType, wantFound: true},
		"money":            {wantType: StringType, wantFound: true},
		"decimal":          {wantType: StringType, wantFound: true},
		"numeric":          {wantType: StringType, wantFound: true},
		"char":             {wantType: StringType, wantFound: true},
		"nchar":            {wantType: StringType, wantFound: true},
		"varchar":          {wantType: StringType, wantFound: true},
		"nvarchar":         {wantType: StringType, wantFound: true},
		"smalldatetime":    {wantType: DateTimeOffsetType, wantFound: true},
		"datetime":         {wantType: DateTimeOffsetType, wantFound: true},
		"datetime2":        {wantType: DateTimeOffsetType, wantFound: true},
		"date":             {wantType: DateTimeOffsetType, wantFound: true},
		"datetimeoffset":   {wantType: DateTimeOffsetType, wantFound: true},
		"uniqueidentifier": {wantType: StringType, wantFound: true},

		// unsupported
		"uniqueidentifer": {wantFound: false},
		"xml":             {wantFound: false},
		"varbinary":       {wantFound: false},
		"geography":       {wantFound: false},
		"time":            {wantFound: false},
		"text":            {wantFound: false},
		"INT":             {wantFound: false},
		"":                {wantFound: false},
	}

	for dataType, tc := range tests {
		t.Run(dataType, func(t *testing.T) {
			t.Parallel()

			gotType, gotFound := MapType(dataType)
			require.Equal(t, tc.wantFound, gotFound)
			if tc.wantFound {
				require.Equal(t, tc.wantType, gotType)
			}
		})
	}
}

func TestSupportedTypes(t *testing.T) {
	t.Parallel()

	types := SupportedTypes()
	require.Len(t, types, 21)
	require.IsIncreasing(t, types)
	for _, dt := range types {
		_, found := MapType(dt)
		require.True(t, found, dt)
	}
}

func TestType_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Boolean", BooleanType.String())
	require.Equal(t, "DateTimeOffset", DateTimeOffsetType.String())
	require.Equal(t, "Type(42)", Type(42).String())

	text, err := StringType.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "String", string(text))
}
