// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/fieldscope/internal/client"
	"github.com/pdiddy/fieldscope/internal/store"
	"github.com/pdiddy/fieldscope/internal/wait"
	"github.com/pdiddy/fieldscope/pkg/types"
)

// Analyze creates one analysis asset per configured kind against the
// document set the upload step produced, polls each to completion,
// fetches its results, and persists them under cfg.ResultsDir. The
// targeted-sentiment payload additionally lands at cfg.ResultsFile,
// the path the summarize step and the dashboard read.
//
// The first failed envelope aborts the run; nothing is persisted for
// the failed asset. When st is non-nil the run outcome (including a
// failure) is recorded in the history store.
func Analyze(ctx context.Context, c *client.Client, p *wait.Poller, cfg types.WorkflowConfig, st *store.Store, w io.Writer) error {
	docSetID, err := ReadDocumentSetID(cfg.DocumentSetIDFile)
	if err != nil {
		return err
	}

	kinds := cfg.AssetKinds
	if len(kinds) == 0 {
		kinds = types.AllAssetKinds
	}

	run := store.Run{
		ID:            store.NewRunID(),
		StartedAt:     time.Now().UTC(),
		DocumentSetID: docSetID,
		Status:        "completed",
	}

	err = analyzeAssets(ctx, c, p, cfg, docSetID, kinds, &run, w)
	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = "failed"
	} else {
		run.ResultsPath = cfg.ResultsFile
	}

	if st != nil {
		if recErr := st.RecordRun(ctx, run); recErr != nil {
			fmt.Fprintf(w, "warning: recording run failed: %v\n", recErr)
		}
	}
	return err
}

func analyzeAssets(ctx context.Context, c *client.Client, p *wait.Poller, cfg types.WorkflowConfig, docSetID string, kinds []types.AssetKind, run *store.Run, w io.Writer) error {
	for _, kind := range kinds {
		fmt.Fprintf(w, "creating asset: %s\n", kind)
		env, err := c.CreateAsset(ctx, kind, docSetID)
		if err != nil {
			return err
		}
		if !env.Success {
			run.Assets = append(run.Assets, store.RunAsset{Kind: kind, Status: types.StatusFailed, Error: env.Error})
			return fmt.Errorf("creating %s asset failed: %s", kind, env.Error)
		}

		asset, err := client.CreatedAsset(kind, env)
		if err != nil {
			return err
		}
		if asset.ID == "" {
			return fmt.Errorf("server returned a %s asset without an ID", kind)
		}

		fmt.Fprintf(w, "waiting: %s %s\n", kind, asset.ID)
		waitEnv := p.Wait(ctx, kind, asset.ID)
		if !waitEnv.Success {
			run.Assets = append(run.Assets, store.RunAsset{
				Kind: kind, AssetID: asset.ID, Status: types.StatusFailed, Error: waitEnv.Error,
			})
			return fmt.Errorf("%s %s did not complete: %s", kind, asset.ID, waitEnv.Error)
		}

		env, err = c.GetAssetResults(ctx, kind, asset.ID)
		if err != nil {
			return err
		}
		if !env.Success {
			run.Assets = append(run.Assets, store.RunAsset{
				Kind: kind, AssetID: asset.ID, Status: types.StatusFailed, Error: env.Error,
			})
			return fmt.Errorf("fetching %s results failed: %s", kind, env.Error)
		}

		path, err := persistResults(cfg, kind, env)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "completed: %s (results: %s)\n", kind, path)

		run.Assets = append(run.Assets, store.RunAsset{
			Kind: kind, AssetID: asset.ID, Status: types.StatusCompleted,
		})
	}
	return nil
}

// persistResults writes one asset's raw results payload via a temp
// file and rename so readers never see a partial file.
func persistResults(cfg types.WorkflowConfig, kind types.AssetKind, env types.Envelope) (string, error) {
	path := filepath.Join(cfg.ResultsDir, string(kind)+".json")
	if kind == types.AssetTargetedSentiment && cfg.ResultsFile != "" {
		path = cfg.ResultsFile
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".results-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(env.Data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing results: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return path, nil
}

// KindList parses a comma-separated asset kind list.
func KindList(s string) ([]types.AssetKind, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var kinds []types.AssetKind
	for _, part := range strings.Split(s, ",") {
		kind := types.AssetKind(strings.TrimSpace(part))
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown asset kind %q", kind)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
