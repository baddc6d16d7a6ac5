// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xataio/sqlindexer/cmd/config"
)

// Version is the sqlindexer version
var (
	Version = "development"
	Env     string
)

const trueStr = "true"

func Prepare() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sqlindexer",
		Short:        "Provisions an Azure AI Search index, data source and indexer for a SQL Server table",
		SilenceUsage: true,
		Version:      version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			return nil
		},
	}

	// configuration keys already carry the SQLINDEXER_ prefix
	viper.AutomaticEnv()

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with sqlindexer if any")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for the application. One of trace, debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON lines instead of the console format")

	// provision cmd
	sourceFlags(provisionCmd)
	searchFlags(provisionCmd)
	provisionCmd.Flags().Bool("wait", false, "Wait for the indexer run to complete")

	// plan cmd
	sourceFlags(planCmd)
	planCmd.Flags().Bool("json", false, "Output the plan in JSON format")
	planCmd.Flags().Bool("yaml", false, "Output the plan in YAML format")
	planCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	// run cmd
	searchFlags(runCmd)
	runCmd.Flags().Bool("wait", false, "Wait for the indexer run to complete")

	// status cmd
	searchFlags(statusCmd)
	statusCmd.Flags().Bool("json", false, "Output the indexer status in JSON format")
	statusCmd.Flags().String("template", "", "Go template, with sprig functions, used to render the indexer status")
	statusCmd.Flags().String("field", "", "Path of a single field of the indexer status to output, e.g. lastResult.itemsProcessed")
	statusCmd.MarkFlagsMutuallyExclusive("json", "template", "field")

	// teardown cmd
	teardownCmd.Flags().String("table", "", "Name of the table the index was created for")
	searchFlags(teardownCmd)

	// Flag binding for root cmd
	rootFlagBinding(rootCmd)

	// register subcommands
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(teardownCmd)
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

func sourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("table", "", "Name of the source table")
	cmd.Flags().String("schema", "", "Schema of the source table")
	cmd.Flags().String("connection-string", "", "SQL Server connection string, used to read the table schema and by the search data source")
}

func searchFlags(cmd *cobra.Command) {
	cmd.Flags().String("endpoint", "", "Search service endpoint, https://<service>.search.windows.net")
	cmd.Flags().String("api-key", "", "Search service admin api key")
	cmd.Flags().String("indexer", "", "Name of the indexer, defaults to sampleindexer")
}

func withSignalWatcher(fn func(ctx context.Context, cmd *cobra.Command) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(),
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		defer cancel()
		return fn(ctx, cmd)
	}
}

func rootFlagBinding(cmd *cobra.Command) {
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("SQLINDEXER_LOG_LEVEL", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("SQLINDEXER_LOG_JSON", cmd.PersistentFlags().Lookup("log-json"))
}

// flagBinding lets flags overwrite the configuration, whether it comes from
// a yaml file or from env variables.
func flagBinding(cmd *cobra.Command, _ []string) {
	bindings := []struct {
		flag    string
		yamlKey string
		envKey  string
	}{
		{flag: "table", yamlKey: "source.sqlserver.table", envKey: "SQLINDEXER_SQLSERVER_TABLE"},
		{flag: "schema", yamlKey: "source.sqlserver.schema", envKey: "SQLINDEXER_SQLSERVER_SCHEMA"},
		{flag: "connection-string", yamlKey: "source.sqlserver.connection_string", envKey: "SQLINDEXER_SQLSERVER_CONNECTION_STRING"},
		{flag: "endpoint", yamlKey: "search.azure.endpoint", envKey: "SQLINDEXER_SEARCH_ENDPOINT"},
		{flag: "api-key", yamlKey: "search.azure.api_key", envKey: "SQLINDEXER_SEARCH_API_KEY"},
		{flag: "indexer", yamlKey: "search.indexer_name", envKey: "SQLINDEXER_SEARCH_INDEXER_NAME"},
		{flag: "wait", yamlKey: "wait.enabled", envKey: "SQLINDEXER_WAIT_ENABLED"},
	}

	for _, b := range bindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil {
			continue
		}
		viper.BindPFlag(b.yamlKey, f)
		viper.BindPFlag(b.envKey, f)
	}
}

func version() string {
	if Env != "" {
		return Env + " (" + Version + ")"
	}
	return Version
}
