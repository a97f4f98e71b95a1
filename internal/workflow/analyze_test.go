// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fieldscope/internal/store"
	"github.com/pdiddy/fieldscope/internal/wait"
	"github.com/pdiddy/fieldscope/pkg/types"
)

func writeIDFile(t *testing.T, id string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "document_set_id.txt")
	require.NoError(t, os.WriteFile(path, []byte(id+"\n"), 0o644))
	return path
}

func fastPoller(c wait.StatusFetcher) *wait.Poller {
	return &wait.Poller{Client: c, Interval: time.Millisecond, MaxWait: 5 * time.Second}
}

func TestAnalyze(t *testing.T) {
	resultsDir := t.TempDir()
	cfg := types.WorkflowConfig{
		DocumentSetIDFile: writeIDFile(t, "ds-1"),
		ResultsDir:        resultsDir,
		ResultsFile:       filepath.Join(resultsDir, "sentiment_results.json"),
		AssetKinds:        []types.AssetKind{types.AssetEntityTable, types.AssetTargetedSentiment},
	}

	statusCalls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/assets/entity-table":
			json.NewEncoder(w).Encode(map[string]string{"asset_id": "as-et", "status": "queued"})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/assets/targeted-sentiment":
			json.NewEncoder(w).Encode(map[string]string{"asset_id": "as-ts", "status": "queued"})
		case r.URL.Path == "/v1/assets/entity-table/as-et":
			json.NewEncoder(w).Encode(map[string]string{"asset_id": "as-et", "status": "completed"})
		case r.URL.Path == "/v1/assets/targeted-sentiment/as-ts":
			statusCalls++
			status := "processing"
			if statusCalls > 1 {
				status = "completed"
			}
			json.NewEncoder(w).Encode(map[string]string{"asset_id": "as-ts", "status": status})
		case r.URL.Path == "/v1/assets/entity-table/as-et/results":
			w.Write([]byte(`{"entities":[]}`))
		case r.URL.Path == "/v1/assets/targeted-sentiment/as-ts/results":
			w.Write([]byte(`{"document_set_id":"ds-1","documents":[]}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer ts.Close()

	c := testWorkflowClient(ts)
	st, err := store.Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	defer st.Close()

	var out bytes.Buffer
	require.NoError(t, Analyze(context.Background(), c, fastPoller(c), cfg, st, &out))

	data, err := os.ReadFile(cfg.ResultsFile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"document_set_id":"ds-1","documents":[]}`, string(data))

	data, err = os.ReadFile(filepath.Join(resultsDir, "entity-table.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"entities":[]}`, string(data))

	run, err := st.LastRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, "ds-1", run.DocumentSetID)
	assert.Equal(t, cfg.ResultsFile, run.ResultsPath)
	require.Len(t, run.Assets, 2)
	assert.Equal(t, types.StatusCompleted, run.Assets[0].Status)
	assert.Equal(t, types.StatusCompleted, run.Assets[1].Status)

	assert.Contains(t, out.String(), "creating asset: entity-table")
	assert.Contains(t, out.String(), "completed: targeted-sentiment")
}

func TestAnalyze_FailedAssetAbortsRun(t *testing.T) {
	resultsDir := t.TempDir()
	cfg := types.WorkflowConfig{
		DocumentSetIDFile: writeIDFile(t, "ds-1"),
		ResultsDir:        resultsDir,
		ResultsFile:       filepath.Join(resultsDir, "sentiment_results.json"),
		AssetKinds:        []types.AssetKind{types.AssetNarrativeLookup, types.AssetEntityTable},
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/assets/narrative-lookup":
			json.NewEncoder(w).Encode(map[string]string{"asset_id": "as-nl", "status": "queued"})
		case r.URL.Path == "/v1/assets/narrative-lookup/as-nl":
			json.NewEncoder(w).Encode(map[string]string{
				"asset_id": "as-nl", "status": "failed", "error": "model overloaded",
			})
		default:
			t.Errorf("request past the failed asset: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer ts.Close()

	c := testWorkflowClient(ts)
	st, err := store.Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	defer st.Close()

	var out bytes.Buffer
	err = Analyze(context.Background(), c, fastPoller(c), cfg, st, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")

	run, lastErr := st.LastRun(context.Background())
	require.NoError(t, lastErr)
	assert.Equal(t, "failed", run.Status)
	assert.Empty(t, run.ResultsPath)
	require.Len(t, run.Assets, 1)
	assert.Equal(t, types.AssetNarrativeLookup, run.Assets[0].Kind)
	assert.Equal(t, types.StatusFailed, run.Assets[0].Status)

	_, statErr := os.Stat(cfg.ResultsFile)
	assert.True(t, os.IsNotExist(statErr), "nothing persisted for a failed run")
}

func TestAnalyze_MissingIDFile(t *testing.T) {
	cfg := types.WorkflowConfig{
		DocumentSetIDFile: filepath.Join(t.TempDir(), "absent.txt"),
	}
	var out bytes.Buffer
	err := Analyze(context.Background(), nil, nil, cfg, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading document set ID file")
}

func TestKindList(t *testing.T) {
	kinds, err := KindList("entity-table, targeted-sentiment")
	require.NoError(t, err)
	assert.Equal(t, []types.AssetKind{types.AssetEntityTable, types.AssetTargetedSentiment}, kinds)

	kinds, err = KindList("")
	require.NoError(t, err)
	assert.Nil(t, kinds)

	_, err = KindList("entity-table,topic-model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown asset kind")
}
