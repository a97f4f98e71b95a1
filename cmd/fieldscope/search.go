package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/internal/client"
	"github.com/pdiddy/fieldscope/internal/report"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents on the server",
	Long: `Search runs a server-side document search and prints the matching
documents. The returned document IDs can seed a document set via
"docset create --ids".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of hits")
	searchCmd.Flags().Bool("json", false, "output hits as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	query := strings.Join(args, " ")

	c, err := newClient()
	if err != nil {
		return err
	}

	env, err := c.Search(context.Background(), query, limit)
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("search failed (HTTP %d): %s", env.StatusCode, env.Error)
	}

	if jsonOutput {
		return printEnvelope(env)
	}

	hits, err := client.SearchHits(env)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-28s  %-50s  %s\n", "Rank", "Document", "Title", "Score")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 92))
	for i, h := range hits {
		fmt.Fprintf(os.Stdout, "%-4d  %-28s  %-50s  %.2f\n",
			i+1, h.DocumentID, report.Truncate(h.Title, 50), h.Score)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(hits))
	return nil
}
