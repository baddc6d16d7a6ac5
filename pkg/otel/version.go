// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"runtime/debug"
	"sync"
)

const unknownVersion = "unknown"

// buildVersion prefers the vcs revision stamped by `go build` and falls back
// to the main module version (set by `go install pkg@version`).
var buildVersion = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	return unknownVersion
})
