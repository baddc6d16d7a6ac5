// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewInstrumentationProvider_disabled(t *testing.T) {
	t.Parallel()

	provider, err := NewInstrumentationProvider(context.Background(), &Config{})
	require.NoError(t, err)
	require.Nil(t, provider.NewInstrumentation("test"))
	require.False(t, provider.NewInstrumentation("test").IsEnabled())
	require.NoError(t, provider.Close())
}

func TestStartSpan_nilTracer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gotCtx, span := StartSpan(ctx, nil, "test")
	require.Equal(t, ctx, gotCtx)
	require.Nil(t, span)
	// noop on nil span
	CloseSpan(span, errors.New("oh noes"))
}

func TestCloseSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error

		wantStatus codes.Code
		wantEvents int
	}{
		{
			name:       "ok",
			wantStatus: codes.Unset,
		},
		{
			name:       "error recorded",
			err:        errors.New("oh noes"),
			wantStatus: codes.Error,
			wantEvents: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

			_, span := StartSpan(context.Background(), tp.Tracer("test"), "op")
			CloseSpan(span, tc.err)

			ended := recorder.Ended()
			require.Len(t, ended, 1)
			require.Equal(t, tc.wantStatus, ended[0].Status().Code)
			require.Len(t, ended[0].Events(), tc.wantEvents)
		})
	}
}
