package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/internal/store"
	"github.com/pdiddy/fieldscope/internal/wait"
	"github.com/pdiddy/fieldscope/internal/workflow"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run analysis assets against the uploaded document set",
	Long: `Analyze reads the document-set ID the upload step wrote, creates one
analysis asset per configured kind, polls each until it reaches a terminal
state, and persists the results. The run is recorded in the local history
store. The first failure aborts the run.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("kinds", "", "comma-separated asset kinds (default: all)")
	analyzeCmd.Flags().Duration("interval", 0, "poll interval (default from config)")
	analyzeCmd.Flags().Duration("max-wait", 0, "maximum wait per asset (default from config)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := workflowConfig()
	if kindsFlag, _ := cmd.Flags().GetString("kinds"); kindsFlag != "" {
		kinds, err := workflow.KindList(kindsFlag)
		if err != nil {
			return err
		}
		cfg.AssetKinds = kinds
	}

	pollCfg := pollConfig()
	if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
		pollCfg.Interval = d
	}
	if d, _ := cmd.Flags().GetDuration("max-wait"); d > 0 {
		pollCfg.MaxWait = d
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	st, err := store.Open(storeConfig())
	if err != nil {
		// The store is bookkeeping; analysis can proceed without it.
		fmt.Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
		st = nil
	} else {
		defer st.Close()
	}

	poller := wait.New(c, pollCfg)
	return workflow.Analyze(context.Background(), c, poller, cfg, st, os.Stdout)
}
