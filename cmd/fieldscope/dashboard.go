package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/internal/dashboard"
	"github.com/pdiddy/fieldscope/internal/store"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the analysis results dashboard over HTTP",
	Long: `Dashboard serves the persisted results file: the raw JSON, the
aggregated entity view, the run history, and a minimal HTML page. The
results file is re-read on every request.`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().String("addr", "", "listen address (default from config)")

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg := dashboardConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "fieldscope.dashboard",
		Level: hclog.Info,
	})

	st, err := store.Open(storeConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
		st = nil
	} else {
		defer st.Close()
	}

	return dashboard.New(cfg, st, logger).ListenAndServe()
}
