// SPDX-License-Identifier: Apache-2.0

package backoff

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoff_RetryNotify(t *testing.T) {
	t.Parallel()

	errTest := errors.New("oh noes")

	tests := []struct {
		name      string
		cfg       *Config
		failUntil int

		wantCalls int
		wantErr   error
	}{
		{
			name:      "ok - first attempt",
			cfg:       &Config{Constant: &ConstantConfig{Interval: time.Millisecond, MaxRetries: 3}},
			failUntil: 0,

			wantCalls: 1,
		},
		{
			name:      "ok - succeeds after retries",
			cfg:       &Config{Constant: &ConstantConfig{Interval: time.Millisecond, MaxRetries: 3}},
			failUntil: 2,

			wantCalls: 3,
		},
		{
			name:      "error - retries exhausted",
			cfg:       &Config{Constant: &ConstantConfig{Interval: time.Millisecond, MaxRetries: 2}},
			failUntil: 10,

			wantCalls: 3,
			wantErr:   errTest,
		},
		{
			name: "error - exponential retries exhausted",
			cfg: &Config{Exponential: &ExponentialConfig{
				InitialInterval: time.Millisecond,
				MaxInterval:     2 * time.Millisecond,
				MaxRetries:      1,
			}},
			failUntil: 10,

			wantCalls: 2,
			wantErr:   errTest,
		},
		{
			name:      "error - no policy configured",
			cfg:       &Config{},
			failUntil: 10,

			wantCalls: 1,
			wantErr:   errTest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			bo := New(context.Background(), tc.cfg)
			err := bo.RetryNotify(func() error {
				calls++
				if calls <= tc.failUntil {
					return errTest
				}
				return nil
			}, nil)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.wantCalls, calls)
		})
	}
}

func TestBackoff_PermanentErrorStopsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	bo := New(context.Background(), &Config{Constant: &ConstantConfig{Interval: time.Millisecond, MaxRetries: 5}})
	err := bo.RetryNotify(func() error {
		calls++
		return fmt.Errorf("%w: bad request", ErrPermanent)
	}, nil)
	require.ErrorIs(t, err, ErrPermanent)
	require.Equal(t, 1, calls)
}
