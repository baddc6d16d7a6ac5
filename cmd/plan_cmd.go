// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/sqlindexer/pkg/provision"
)

var planCmd = &cobra.Command{
	Use:    "plan",
	Short:  "Reads the table schema and outputs the search resources provision would create, without calling the search service",
	PreRun: flagBinding,
	RunE:   withSignalWatcher(planFn),
	Example: `
	sqlindexer plan -c sqlindexer.yaml
	sqlindexer plan --table Product --schema SalesLT --connection-string <connection-string> --json
	`,
}

func planFn(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger()
	p, err := newProvisioner(ctx, logger, provisionerRequirements{source: true})
	if err != nil {
		return err
	}
	defer p.Close()

	plan, err := p.Plan(ctx)
	if err != nil {
		return err
	}

	return printPlan(cmd, plan)
}

func printPlan(cmd *cobra.Command, plan *provision.Plan) error {
	var out []byte
	var err error
	switch {
	case flagIsSet(cmd, "json"):
		out, err = plan.JSON()
	case flagIsSet(cmd, "yaml"):
		out, err = plan.YAML()
	default:
		out = []byte(prettyPlan(plan))
	}
	if err != nil {
		return fmt.Errorf("formatting plan: %w", err)
	}

	fmt.Println(string(out)) //nolint:forbidigo
	return nil
}

func prettyPlan(plan *provision.Plan) string {
	fields := pterm.TableData{{"Field", "Type", "Key", "Searchable", "Filterable", "Retrievable"}}
	for _, f := range plan.Index.Fields {
		fields = append(fields, []string{
			f.Name,
			f.Type,
			strconv.FormatBool(f.Key),
			strconv.FormatBool(f.Searchable),
			strconv.FormatBool(f.Filterable),
			strconv.FormatBool(f.Retrievable),
		})
	}
	fieldsTable, _ := pterm.DefaultTable.WithHasHeader().WithData(fields).Srender()

	resources := pterm.TableData{
		{"Resource", "Name"},
		{"index", plan.Index.Name},
		{"data source", plan.DataSource.Name},
		{"indexer", plan.Indexer.Name},
	}
	resourcesTable, _ := pterm.DefaultTable.WithHasHeader().WithData(resources).Srender()

	str := resourcesTable + "\n\n" + fieldsTable
	if len(plan.SkippedColumns) > 0 {
		skipped := pterm.TableData{{"Skipped column", "SQL type"}}
		for _, c := range plan.SkippedColumns {
			skipped = append(skipped, []string{c.Name, c.DataType})
		}
		skippedTable, _ := pterm.DefaultTable.WithHasHeader().WithData(skipped).Srender()
		str += "\n\n" + skippedTable
	}
	return str
}

func flagIsSet(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Value.String() == trueStr
}
