// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fieldscope CLI: a client and
// workflow layer over the document-analysis API. Each operation is a
// subcommand; the upload/analyze/summarize workflow commands run with
// no flags using file-based defaults.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fieldscope/internal/client"
	"github.com/pdiddy/fieldscope/internal/secrets"
	"github.com/pdiddy/fieldscope/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the fieldscope CLI.
var rootCmd = &cobra.Command{
	Use:   "fieldscope",
	Short: "Client and workflow automation for the document-analysis API",
	Long: `fieldscope wraps the document-analysis API (document sets, search,
narrative/entity/sentiment analysis assets) and automates the field-reports
workflow: upload PDFs, create a document set, run analysis assets, wait for
completion, persist results, and summarize them.

The dashboard subcommand serves persisted results over HTTP.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fieldscope.yaml or ~/.config/fieldscope/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fieldscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fieldscope"))
		}
	}

	viper.SetDefault("client.base_url", "https://engines.primer.ai")
	viper.SetDefault("client.timeout", 60*time.Second)
	viper.SetDefault("client.user_agent", "fieldscope/0.1")
	viper.SetDefault("client.token_file", secrets.DefaultTokenFile)
	viper.SetDefault("poll.interval", 10*time.Second)
	viper.SetDefault("poll.max_wait", 15*time.Minute)
	viper.SetDefault("workflow.reports_dir", "reports")
	viper.SetDefault("workflow.document_set_id_file", "data/document_set_id.txt")
	viper.SetDefault("workflow.results_dir", "data/results")
	viper.SetDefault("workflow.results_file", "data/sentiment_results.json")
	viper.SetDefault("workflow.document_set_name", "Field Reports")
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("dashboard.addr", ":8350")
	viper.SetDefault("dashboard.results_file", "data/sentiment_results.json")

	viper.SetEnvPrefix("FIELDSCOPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newClient loads the bearer credential and builds the API client.
// A missing or malformed credential is fatal.
func newClient() (*client.Client, error) {
	token, err := secrets.ResolveToken(viper.GetString("client.token_file"))
	if err != nil {
		return nil, err
	}
	return client.New(clientConfig(), token), nil
}

func clientConfig() types.ClientConfig {
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("client.timeout"),
			UserAgent: viper.GetString("client.user_agent"),
		},
		BaseURL: viper.GetString("client.base_url"),
	}
}

func pollConfig() types.PollConfig {
	return types.PollConfig{
		Interval: viper.GetDuration("poll.interval"),
		MaxWait:  viper.GetDuration("poll.max_wait"),
	}
}

func workflowConfig() types.WorkflowConfig {
	var kinds []types.AssetKind
	for _, k := range viper.GetStringSlice("workflow.asset_kinds") {
		kinds = append(kinds, types.AssetKind(k))
	}
	return types.WorkflowConfig{
		AssetKinds:        kinds,
		ReportsDir:        viper.GetString("workflow.reports_dir"),
		DocumentSetIDFile: viper.GetString("workflow.document_set_id_file"),
		ResultsDir:        viper.GetString("workflow.results_dir"),
		ResultsFile:       viper.GetString("workflow.results_file"),
		DocumentSetName:   viper.GetString("workflow.document_set_name"),
	}
}

func storeConfig() types.StoreConfig {
	return types.StoreConfig{DataDir: viper.GetString("store.data_dir")}
}

func dashboardConfig() types.DashboardConfig {
	return types.DashboardConfig{
		Addr:        viper.GetString("dashboard.addr"),
		ResultsFile: viper.GetString("dashboard.results_file"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
