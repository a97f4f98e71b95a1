package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded workflow runs",
	Long: `Runs lists the workflow run history from the local store: when each
analyze run started, which document set it targeted, and how each asset
ended.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	runsCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-24s  %-9s  %s\n",
		"Run", "Started", "Document Set", "Status", "Assets")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 104))
	for _, r := range runs {
		var assets []string
		for _, a := range r.Assets {
			assets = append(assets, fmt.Sprintf("%s=%s", a.Kind, a.Status))
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-24s  %-9s  %s\n",
			r.ID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.DocumentSetID,
			r.Status,
			strings.Join(assets, ", "))
	}
	return nil
}
