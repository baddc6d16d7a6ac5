// SPDX-License-Identifier: Apache-2.0

package sqlserver

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xataio/sqlindexer/internal/testcontainers"
	"github.com/xataio/sqlindexer/pkg/schema"
)

func Test_SQLServerReader(t *testing.T) {
	if os.Getenv("SQLINDEXER_INTEGRATION_TESTS") == "" {
		t.Skip("skipping integration test...")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var connString string
	cleanup, err := testcontainers.SetupMSSQLContainer(ctx, &connString)
	require.NoError(t, err)
	defer cleanup()

	execQuery(t, ctx, connString, "CREATE SCHEMA SalesLT")
	execQuery(t, ctx, connString, `CREATE TABLE SalesLT.Product(
		ProductID INT NOT NULL PRIMARY KEY,
		Name NVARCHAR(50) NOT NULL,
		ListPrice MONEY NOT NULL,
		Discontinued BIT NULL,
		rowguid UNIQUEIDENTIFIER NOT NULL,
		ModifiedDate DATETIME NOT NULL,
		ThumbNailPhoto VARBINARY(MAX) NULL)`)
	execQuery(t, ctx, connString, `CREATE TABLE SalesLT.OrderLine(
		OrderID INT NOT NULL,
		LineNumber SMALLINT NOT NULL,
		Quantity INT NOT NULL,
		CONSTRAINT PK_OrderLine PRIMARY KEY (OrderID, LineNumber))`)

	reader, err := NewReader(ctx, &Config{ConnectionString: connString})
	require.NoError(t, err)
	defer reader.Close()

	t.Run("single primary key", func(t *testing.T) {
		table, err := reader.ReadTable(ctx, "SalesLT", "Product")
		require.NoError(t, err)
		require.Equal(t, &schema.Table{
			Schema: "SalesLT",
			Name:   "Product",
			Columns: []schema.Column{
				{Name: "ProductID", DataType: "int"},
				{Name: "Name", DataType: "nvarchar"},
				{Name: "ListPrice", DataType: "money"},
				{Name: "Discontinued", DataType: "bit"},
				{Name: "rowguid", DataType: "uniqueidentifier"},
				{Name: "ModifiedDate", DataType: "datetime"},
				{Name: "ThumbNailPhoto", DataType: "varbinary"},
			},
			PrimaryKey: []string{"ProductID"},
		}, table)
	})

	t.Run("composite primary key", func(t *testing.T) {
		table, err := reader.ReadTable(ctx, "SalesLT", "OrderLine")
		require.NoError(t, err)
		require.Equal(t, []string{"OrderID", "LineNumber"}, table.PrimaryKey)
	})

	t.Run("table not found", func(t *testing.T) {
		_, err := reader.ReadTable(ctx, "SalesLT", "Missing")
		require.ErrorIs(t, err, schema.ErrTableNotFound)
	})
}

func execQuery(t *testing.T, ctx context.Context, connString, query string) {
	db, err := sql.Open("sqlserver", connString)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, query)
	require.NoError(t, err)
}
