// SPDX-License-Identifier: Apache-2.0

package sqlserver

import (
	"context"
	"errors"
	"fmt"
	"net"

	mssql "github.com/microsoft/go-mssqldb"
)

var (
	ErrConnTimeout             = errors.New("connection timeout")
	ErrLoginFailed             = errors.New("login failed")
	ErrMissingConnectionString = errors.New("sql server connection string is required")
)

// SQL Server error numbers, see sys.messages.
const (
	invalidObjectNameErrNumber int32 = 208
	permissionDeniedErrNumber  int32 = 229
	loginFailedErrNumber       int32 = 18456
	cannotOpenDBErrNumber      int32 = 4060
)

type ErrObjectNotFound struct {
	Details string
}

func (e *ErrObjectNotFound) Error() string {
	return fmt.Sprintf("object not found: %s", e.Details)
}

type ErrPermissionDenied struct {
	Details string
}

func (e *ErrPermissionDenied) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Details)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrConnTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrConnTimeout, err)
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		switch msErr.SQLErrorNumber() {
		case loginFailedErrNumber, cannotOpenDBErrNumber:
			return fmt.Errorf("%w: %s", ErrLoginFailed, msErr.Message)
		case invalidObjectNameErrNumber:
			return &ErrObjectNotFound{Details: msErr.Message}
		case permissionDeniedErrNumber:
			return &ErrPermissionDenied{Details: msErr.Message}
		}
	}

	return err
}
