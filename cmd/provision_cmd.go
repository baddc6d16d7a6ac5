// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/sqlindexer/pkg/provision"
)

var provisionCmd = &cobra.Command{
	Use:    "provision",
	Short:  "Creates the search index, data source and indexer for a SQL Server table and runs the indexer",
	PreRun: flagBinding,
	RunE:   withSignalWatcher(provisionFn),
	Example: `
	sqlindexer provision -c sqlindexer.yaml
	sqlindexer provision -c sqlindexer.env --wait
	sqlindexer provision --table Product --schema SalesLT --connection-string <connection-string> --endpoint <endpoint> --api-key <api-key>
	`,
}

func provisionFn(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger()
	p, err := newProvisioner(ctx, logger,
		provisionerRequirements{source: true, search: true},
		provision.WithProgressBar(newSpinnerBar))
	if err != nil {
		return err
	}
	defer p.Close()

	sp, _ := pterm.DefaultSpinner.WithText("provisioning search resources...").Start()
	status, err := p.Provision(ctx)
	if err != nil {
		if errors.Is(err, provision.ErrWaitTimeout) {
			sp.Warning("indexer still running, check progress with sqlindexer status")
			return printStatus(cmd, status)
		}
		sp.Fail(err.Error())
		return err
	}
	sp.Success("search resources provisioned")

	return printStatus(cmd, status)
}
