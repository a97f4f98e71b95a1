// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/pkg/types"
)

var docsetCmd = &cobra.Command{
	Use:   "docset",
	Short: "Manage document sets (list, get, create, delete)",
	Long: `Docset exposes the document-set endpoints directly. A document set is a
named, server-side collection of documents used as the scope for analysis
assets.`,
}

var docsetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all document sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		env := c.ListDocumentSets(context.Background())
		return printEnvelope(env)
	},
}

var docsetGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Fetch one document set including its documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		env, err := c.GetDocumentSet(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printEnvelope(env)
	},
}

var docsetDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		env, err := c.DeleteDocumentSet(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !env.Success {
			return fmt.Errorf("delete failed: %s", env.Error)
		}
		fmt.Printf("deleted document set %s\n", args[0])
		return nil
	},
}

var docsetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a document set from a query, document IDs, or raw text",
	Long: `Create builds a document set in one of three modes: --query selects
documents matching a server-side search, --ids lists previously uploaded
document IDs, and repeated --text flags provide raw text documents. Exactly
one mode must be used.`,
	RunE: runDocsetCreate,
}

func init() {
	docsetCreateCmd.Flags().String("name", "", "document set name")
	docsetCreateCmd.Flags().String("query", "", "create from a search query")
	docsetCreateCmd.Flags().String("ids", "", "create from comma-separated document IDs")
	docsetCreateCmd.Flags().StringArray("text", nil, "create from raw text (repeatable)")

	docsetCmd.AddCommand(docsetListCmd, docsetGetCmd, docsetDeleteCmd, docsetCreateCmd)
	rootCmd.AddCommand(docsetCmd)
}

func runDocsetCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	query, _ := cmd.Flags().GetString("query")
	idsFlag, _ := cmd.Flags().GetString("ids")
	texts, _ := cmd.Flags().GetStringArray("text")

	modes := 0
	for _, set := range []bool{query != "", idsFlag != "", len(texts) > 0} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("exactly one of --query, --ids, --text is required")
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var env types.Envelope
	switch {
	case query != "":
		env, err = c.CreateDocumentSetFromQuery(ctx, query, name)
	case idsFlag != "":
		env, err = c.CreateDocumentSetFromIDs(ctx, splitIDs(idsFlag), name)
	default:
		env, err = c.CreateDocumentSetFromText(ctx, texts, name)
	}
	if err != nil {
		return err
	}
	return printEnvelope(env)
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

// printEnvelope writes a successful envelope's payload as indented
// JSON, or turns a failed envelope into a nonzero exit.
func printEnvelope(env types.Envelope) error {
	if !env.Success {
		return fmt.Errorf("request failed (HTTP %d): %s", env.StatusCode, env.Error)
	}
	if len(env.Data) == 0 {
		fmt.Printf("OK (HTTP %d)\n", env.StatusCode)
		return nil
	}
	var out any
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
