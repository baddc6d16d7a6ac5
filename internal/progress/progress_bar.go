// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

type Bar interface {
	Set(int) error
	Describe(string)
	Close() error
}

type ProgressBar struct {
	*progressbar.ProgressBar
}

// NewSpinner returns a bar with no known total, rendered as a spinner with
// the current count next to the description.
func NewSpinner(description string, out io.Writer) *ProgressBar {
	if out == nil {
		out = os.Stderr
	}
	return &ProgressBar{
		ProgressBar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionOnCompletion(func() {
				io.WriteString(out, "\n") //nolint:errcheck
			}),
		),
	}
}

type NoopBar struct{}

func (NoopBar) Set(int) error   { return nil }
func (NoopBar) Describe(string) {}
func (NoopBar) Close() error    { return nil }
