package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/internal/workflow"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the field-report PDFs and create a document set",
	Long: `Upload scans the reports directory for PDF files, uploads them to the
API, creates a document set from the uploaded documents, and writes the
document-set ID to a file for the analyze step. Defaults come from the
config file, so the command runs with no flags.`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().String("reports-dir", "", "folder of PDF reports (default from config)")
	uploadCmd.Flags().String("name", "", "document set name (default from config)")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := workflowConfig()
	if dir, _ := cmd.Flags().GetString("reports-dir"); dir != "" {
		cfg.ReportsDir = dir
	}
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		cfg.DocumentSetName = name
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	_, err = workflow.Upload(context.Background(), c, cfg, os.Stdout)
	return err
}
