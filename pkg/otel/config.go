// SPDX-License-Identifier: Apache-2.0

package otel

import "time"

// Config enables the OTLP exporters. A nil Metrics or Traces section leaves
// that signal disabled.
type Config struct {
	Metrics *MetricsConfig
	Traces  *TracesConfig
}

type MetricsConfig struct {
	Endpoint           string
	CollectionInterval time.Duration
}

type TracesConfig struct {
	Endpoint    string
	SampleRatio float64
}

const (
	defaultCollectionInterval = 60 * time.Second
	defaultSampleRatio        = 1.0
)

func (c *Config) IsEnabled() bool {
	return c != nil && (c.Metrics != nil || c.Traces != nil)
}

func (c *MetricsConfig) collectionInterval() time.Duration {
	if c.CollectionInterval > 0 {
		return c.CollectionInterval
	}
	return defaultCollectionInterval
}

func (c *TracesConfig) sampleRatio() float64 {
	if c.SampleRatio > 0 {
		return c.SampleRatio
	}
	return defaultSampleRatio
}
