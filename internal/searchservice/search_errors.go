// SPDX-License-Identifier: Apache-2.0

package searchservice

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/xataio/sqlindexer/internal/json"
)

// ResponseError is the error envelope returned by the search service,
// {"error":{"code":"...","message":"..."}}.
type ResponseError struct {
	StatusCode int    `mapstructure:"-"`
	Code       string `mapstructure:"code"`
	Message    string `mapstructure:"message"`
}

func (e *ResponseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

// ErrInvalidRequest is returned for 400 responses, usually an index or
// indexer definition rejected by the service.
type ErrInvalidRequest struct {
	Code    string
	Message string
	Cause   *ResponseError
}

func (e *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Message)
}

func (e *ErrInvalidRequest) Unwrap() error {
	return e.Cause
}

var (
	ErrResourceNotFound     = errors.New("search resource not found")
	ErrResourceConflict     = errors.New("search resource conflict")
	ErrUnauthorized         = errors.New("unauthorized search request")
	ErrTooManyRequests      = errors.New("too many requests")
	ErrUnsupportedFieldType = errors.New("unsupported search field type")
)

const (
	unknownErrorCode    = "<unknown error code>"
	unknownErrorMessage = "<unknown error message>"
)

// IsErrResponse returns the typed error for the response on input, or nil if
// the status code is not an error.
func IsErrResponse(res *http.Response) error {
	if res.StatusCode < http.StatusBadRequest {
		return nil
	}
	return ExtractResponseError(res.Body, res.StatusCode)
}

// ExtractResponseError decodes the error envelope in the body and maps the
// status code to a typed error. The raw *ResponseError is always wrapped.
func ExtractResponseError(body io.Reader, statusCode int) error {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Code:       unknownErrorCode,
		Message:    unknownErrorMessage,
	}

	var e map[string]any
	if err := json.NewDecoder(body).Decode(&e); err == nil {
		if envelope, ok := e["error"]; ok {
			decoded := &ResponseError{}
			if err := mapstructure.Decode(envelope, decoded); err == nil {
				respErr.Code = decoded.Code
				respErr.Message = decoded.Message
			}
		}
	}

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrResourceNotFound, respErr)
	case http.StatusConflict, http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %w", ErrResourceConflict, respErr)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, respErr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrTooManyRequests, respErr)
	case http.StatusBadRequest:
		return &ErrInvalidRequest{
			Code:    respErr.Code,
			Message: respErr.Message,
			Cause:   respErr,
		}
	default:
		return respErr
	}
}
