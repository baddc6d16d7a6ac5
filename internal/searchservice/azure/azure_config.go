// SPDX-License-Identifier: Apache-2.0

package azure

import "time"

type Config struct {
	// Endpoint is the service base URL, https://<service>.search.windows.net
	Endpoint string
	APIKey   string
	// APIVersion defaults to 2023-11-01
	APIVersion     string
	RequestTimeout time.Duration
}

const DefaultAPIVersion = "2023-11-01"

func (c *Config) apiVersion() string {
	if c.APIVersion != "" {
		return c.APIVersion
	}
	return DefaultAPIVersion
}
