// SPDX-License-Identifier: Apache-2.0

package sqlserver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestMapError(t *testing.T) {
	t.Parallel()

	errTest := errors.New("oh noes")

	tests := []struct {
		name string
		err  error

		wantErr     error
		wantErrType any
		wantSame    bool
	}{
		{
			name:    "nil",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "context deadline",
			err:     fmt.Errorf("dial: %w", context.DeadlineExceeded),
			wantErr: ErrConnTimeout,
		},
		{
			name:    "network timeout",
			err:     timeoutErr{},
			wantErr: ErrConnTimeout,
		},
		{
			name:    "login failed",
			err:     mssql.Error{Number: 18456, Message: "Login failed for user 'sa'."},
			wantErr: ErrLoginFailed,
		},
		{
			name:    "cannot open database",
			err:     mssql.Error{Number: 4060, Message: "Cannot open database \"AdventureWorks\""},
			wantErr: ErrLoginFailed,
		},
		{
			name:        "invalid object name",
			err:         fmt.Errorf("query: %w", mssql.Error{Number: 208, Message: "Invalid object name 'SalesLT.Nope'."}),
			wantErrType: &ErrObjectNotFound{},
		},
		{
			name:        "permission denied",
			err:         mssql.Error{Number: 229, Message: "The SELECT permission was denied"},
			wantErrType: &ErrPermissionDenied{},
		},
		{
			name:     "other sql server error is returned as is",
			err:      mssql.Error{Number: 1205, Message: "deadlock"},
			wantSame: true,
		},
		{
			name:    "unknown error is returned as is",
			err:     errTest,
			wantErr: errTest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := mapError(tc.err)
			if tc.wantSame {
				require.Equal(t, tc.err, err)
				return
			}
			switch target := tc.wantErrType.(type) {
			case *ErrObjectNotFound:
				require.ErrorAs(t, err, &target)
			case *ErrPermissionDenied:
				require.ErrorAs(t, err, &target)
			default:
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
