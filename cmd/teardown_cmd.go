// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var teardownCmd = &cobra.Command{
	Use:    "teardown",
	Short:  "Deletes the indexer, data source and index created by provision",
	PreRun: flagBinding,
	RunE:   withSignalWatcher(teardownFn),
	Example: `
	sqlindexer teardown -c sqlindexer.yaml
	sqlindexer teardown --table Product --endpoint <endpoint> --api-key <api-key>
	`,
}

func teardownFn(ctx context.Context, _ *cobra.Command) error {
	logger := newLogger()
	p, err := newProvisioner(ctx, logger, provisionerRequirements{search: true})
	if err != nil {
		return err
	}
	defer p.Close()

	sp, _ := pterm.DefaultSpinner.WithText("tearing down search resources...").Start()
	if err := p.Teardown(ctx); err != nil {
		sp.Fail(err.Error())
		return err
	}
	sp.Success("search resources deleted")
	return nil
}
