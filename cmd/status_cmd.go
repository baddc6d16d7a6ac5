// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/xataio/sqlindexer/internal/json"
	"github.com/xataio/sqlindexer/internal/searchservice"
)

var statusCmd = &cobra.Command{
	Use:    "status",
	Short:  "Outputs the status and execution history of the indexer",
	PreRun: flagBinding,
	RunE:   withSignalWatcher(statusFn),
	Example: `
	sqlindexer status -c sqlindexer.yaml
	sqlindexer status -c sqlindexer.env --json
	sqlindexer status -c sqlindexer.env --field lastResult.itemsProcessed
	sqlindexer status -c sqlindexer.env --template '{{ .LastResult.Status | upper }}'
	`,
}

func statusFn(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger()
	p, err := newProvisioner(ctx, logger, provisionerRequirements{search: true})
	if err != nil {
		return err
	}
	defer p.Close()

	status, err := p.Status(ctx)
	if err != nil {
		return err
	}

	return printStatus(cmd, status)
}

type printer interface {
	PrettyPrint() string
}

type statusPrinter struct {
	*searchservice.IndexerStatus
}

func printStatus(cmd *cobra.Command, status *searchservice.IndexerStatus) error {
	if status == nil {
		return nil
	}
	return print(cmd, &statusPrinter{IndexerStatus: status})
}

func print(cmd *cobra.Command, p printer) error {
	var str string
	var err error
	switch {
	case flagIsSet(cmd, "json"):
		str, err = jsonString(p)
	case flagValue(cmd, "template") != "":
		str, err = templateString(flagValue(cmd, "template"), p)
	case flagValue(cmd, "field") != "":
		str, err = fieldString(flagValue(cmd, "field"), p)
	default:
		str = p.PrettyPrint()
	}
	if err != nil {
		return err
	}

	fmt.Println(str) //nolint:forbidigo
	return nil
}

func jsonString(v any) (string, error) {
	b, err := json.MarshalIndent(v)
	if err != nil {
		return "", fmt.Errorf("formatting json: %w", err)
	}
	return string(b), nil
}

func templateString(text string, v any) (string, error) {
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

func fieldString(path string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("formatting json: %w", err)
	}
	res := gjson.GetBytes(b, path)
	if !res.Exists() {
		return "", fmt.Errorf("field %q not found", path)
	}
	return res.String(), nil
}

func flagValue(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func (s *statusPrinter) PrettyPrint() string {
	summary := pterm.TableData{
		{"Indexer status", s.Status},
	}
	if s.Limits.MaxRunTime != "" {
		summary = append(summary,
			[]string{"Max run time", s.Limits.MaxRunTime},
			[]string{"Max document extraction size", strconv.FormatInt(s.Limits.MaxDocumentExtractionSize, 10)},
		)
	}
	summaryTable, _ := pterm.DefaultTable.WithData(summary).Srender()

	history := pterm.TableData{{"Status", "Start", "Duration", "Processed", "Failed", "Error"}}
	results := s.ExecutionHistory
	if len(results) == 0 && s.LastResult != nil {
		results = []searchservice.ExecutionResult{*s.LastResult}
	}
	for _, r := range results {
		history = append(history, []string{
			r.Status,
			formatTime(r.StartTime),
			r.Duration().Round(time.Second).String(),
			strconv.Itoa(r.ItemsProcessed),
			strconv.Itoa(r.ItemsFailed),
			derefString(r.ErrorMessage),
		})
	}
	historyTable, _ := pterm.DefaultTable.WithHasHeader().WithData(history).Srender()

	str := summaryTable + "\n" + historyTable
	if s.LastResult != nil && len(s.LastResult.Errors) > 0 {
		itemErrors := pterm.TableData{{"Key", "Error", "Status code"}}
		for _, e := range s.LastResult.Errors {
			itemErrors = append(itemErrors, []string{e.Key, e.ErrorMessage, strconv.Itoa(e.StatusCode)})
		}
		errorsTable, _ := pterm.DefaultTable.WithHasHeader().WithData(itemErrors).Srender()
		str += "\n" + errorsTable
	}
	return str
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
