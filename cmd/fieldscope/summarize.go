package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/internal/workflow"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print an entity summary of the persisted analysis results",
	Long: `Summarize reads the persisted sentiment results JSON and prints the
aggregated entity view: one row per entity with its type, overall sentiment,
and mention count across all analyzed documents.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().Bool("json", false, "output the summary as JSON")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return workflow.Summarize(workflowConfig(), jsonOutput, os.Stdout)
}
