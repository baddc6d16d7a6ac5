// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"time"
)

type Client interface {
	Do(*http.Request) (*http.Response, error)
}

type Config struct {
	// Timeout bounds every request. Zero means no timeout, cancellation is
	// then driven by the request context only.
	Timeout time.Duration
}

func NewClient(cfg *Config) *http.Client {
	c := &http.Client{
		Transport: http.DefaultTransport,
	}
	if cfg != nil {
		c.Timeout = cfg.Timeout
	}
	return c
}
