// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fieldscope/internal/wait"
	"github.com/pdiddy/fieldscope/pkg/types"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Work with analysis assets (create, status, results, wait)",
	Long: `Asset exposes the per-kind analysis endpoints directly. Supported kinds:
narrative-lookup, entity-table, targeted-sentiment, narrative-graph.

Assets are computed asynchronously; use "asset wait" to block until one
reaches a terminal state.`,
}

var assetCreateCmd = &cobra.Command{
	Use:   "create [kind] [document-set-id]",
	Short: "Create an analysis asset against a document set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		env, err := c.CreateAsset(context.Background(), types.AssetKind(args[0]), args[1])
		if err != nil {
			return err
		}
		return printEnvelope(env)
	},
}

var assetStatusCmd = &cobra.Command{
	Use:   "status [kind] [asset-id]",
	Short: "Fetch the processing status of an asset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		env, err := c.GetAssetStatus(context.Background(), types.AssetKind(args[0]), args[1])
		if err != nil {
			return err
		}
		return printEnvelope(env)
	},
}

var assetResultsCmd = &cobra.Command{
	Use:   "results [kind] [asset-id]",
	Short: "Fetch the results of a completed asset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		env, err := c.GetAssetResults(context.Background(), types.AssetKind(args[0]), args[1])
		if err != nil {
			return err
		}
		return printEnvelope(env)
	},
}

var assetWaitCmd = &cobra.Command{
	Use:   "wait [kind] [asset-id]",
	Short: "Block until an asset reaches a terminal state",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssetWait,
}

func init() {
	assetWaitCmd.Flags().Duration("interval", 0, "poll interval (default from config)")
	assetWaitCmd.Flags().Duration("max-wait", 0, "maximum wait (default from config)")

	assetCmd.AddCommand(assetCreateCmd, assetStatusCmd, assetResultsCmd, assetWaitCmd)
	rootCmd.AddCommand(assetCmd)
}

func runAssetWait(cmd *cobra.Command, args []string) error {
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

	poller := wait.New(c, pollCfg)
	env := poller.Wait(context.Background(), types.AssetKind(args[0]), args[1])
	if !env.Success {
		return fmt.Errorf("%s", env.Error)
	}
	return printEnvelope(env)
}
