// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/sqlindexer/pkg/provision"
)

var runCmd = &cobra.Command{
	Use:    "run",
	Short:  "Starts a run of an existing indexer",
	PreRun: flagBinding,
	RunE:   withSignalWatcher(runFn),
	Example: `
	sqlindexer run -c sqlindexer.yaml
	sqlindexer run --endpoint <endpoint> --api-key <api-key> --indexer productindexer --wait
	`,
}

func runFn(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger()
	p, err := newProvisioner(ctx, logger,
		provisionerRequirements{search: true},
		provision.WithProgressBar(newSpinnerBar))
	if err != nil {
		return err
	}
	defer p.Close()

	sp, _ := pterm.DefaultSpinner.WithText("starting indexer run...").Start()
	status, err := p.Run(ctx)
	if err != nil {
		if errors.Is(err, provision.ErrWaitTimeout) {
			sp.Warning("indexer still running, check progress with sqlindexer status")
			return printStatus(cmd, status)
		}
		sp.Fail(err.Error())
		return err
	}
	sp.Success("indexer run started")

	return printStatus(cmd, status)
}
