// SPDX-License-Identifier: Apache-2.0

package testcontainers

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/mssql"
)

type cleanup func() error

const (
	mssqlImage    = "mcr.microsoft.com/mssql/server:2022-CU14-ubuntu-22.04"
	mssqlPassword = "SqlIndexer!Passw0rd"
)

func SetupMSSQLContainer(ctx context.Context, connString *string) (cleanup, error) {
	ctr, err := mssql.Run(ctx, mssqlImage,
		mssql.WithAcceptEULA(),
		mssql.WithPassword(mssqlPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start mssql container: %w", err)
	}

	*connString, err = ctr.ConnectionString(ctx, "encrypt=disable")
	if err != nil {
		return nil, fmt.Errorf("retrieving connection string for mssql container: %w", err)
	}

	return func() error {
		return ctr.Terminate(ctx)
	}, nil
}
