// SPDX-License-Identifier: Apache-2.0

package backoff

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Backoff repeats an operation until it succeeds, the policy gives up, the
// context is done or the operation returns an ErrPermanent error.
type Backoff interface {
	RetryNotify(Operation, Notify) error
}

type (
	Operation func() error
	Notify    func(error, time.Duration)
)

type Config struct {
	Exponential *ExponentialConfig
	Constant    *ConstantConfig
}

type ExponentialConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	MaxRetries      uint
}

type ConstantConfig struct {
	Interval   time.Duration
	MaxRetries uint
}

var ErrPermanent = errors.New("permanent error, do not retry")

type Provider func(ctx context.Context) Backoff

// NewProvider returns a backoff provider based on the config on input. If no
// policy is configured the operation is attempted only once.
func NewProvider(cfg *Config) Provider {
	return func(ctx context.Context) Backoff {
		return New(ctx, cfg)
	}
}

type policy struct {
	backoff.BackOff
}

func New(ctx context.Context, cfg *Config) Backoff {
	var bo backoff.BackOff
	var maxRetries uint
	switch {
	case cfg != nil && cfg.Constant != nil:
		bo = backoff.NewConstantBackOff(cfg.Constant.Interval)
		maxRetries = cfg.Constant.MaxRetries
	case cfg != nil && cfg.Exponential != nil:
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = cfg.Exponential.InitialInterval
		exp.MaxInterval = cfg.Exponential.MaxInterval
		exp.MaxElapsedTime = cfg.Exponential.MaxElapsedTime
		bo = exp
		maxRetries = cfg.Exponential.MaxRetries
	default:
		bo = &backoff.StopBackOff{}
	}

	if maxRetries > 0 {
		bo = backoff.WithMaxRetries(bo, uint64(maxRetries))
	}

	return &policy{BackOff: backoff.WithContext(bo, ctx)}
}

func (p *policy) RetryNotify(op Operation, notify Notify) error {
	boOp := func() error {
		err := op()
		if errors.Is(err, ErrPermanent) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.RetryNotify(boOp, p.BackOff, backoff.Notify(notify))
}
