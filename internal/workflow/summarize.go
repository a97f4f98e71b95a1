// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/fieldscope/internal/report"
	"github.com/pdiddy/fieldscope/pkg/types"
)

// Summarize loads the persisted sentiment results and writes a
// human-readable entity summary. jsonOutput selects machine-readable
// output instead of the table.
func Summarize(cfg types.WorkflowConfig, jsonOutput bool, w io.Writer) error {
	res, err := report.LoadResults(cfg.ResultsFile)
	if err != nil {
		return err
	}

	summaries := report.Aggregate(res)
	if jsonOutput {
		return report.FormatJSON(summaries, w)
	}

	// The document-set ID file is informational here; its absence is
	// not an error.
	if id, err := ReadDocumentSetID(cfg.DocumentSetIDFile); err == nil {
		fmt.Fprintf(w, "Document set: %s\n", id)
	} else if !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
	fmt.Fprintf(w, "Documents analyzed: %d\n\n", len(res.Documents))

	report.FormatTable(summaries, w)
	return nil
}
