// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDocumentSetFromText_EmptyListRejectedLocally(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	_, err := testClient(ts).CreateDocumentSetFromText(context.Background(), nil, "empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no network call expected")

	_, err = testClient(ts).CreateDocumentSetFromText(context.Background(), []string{"ok", ""}, "blank")
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no network call expected")
}

func TestCreateDocumentSetFromText_RequestShape(t *testing.T) {
	var got createDocumentSetRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/document_sets", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"document_set_id":"ds-7","document_count":2}`))
	}))
	defer ts.Close()

	env, err := testClient(ts).CreateDocumentSetFromText(context.Background(),
		[]string{"report one", "report two"}, "field-reports")
	require.NoError(t, err)
	require.True(t, env.Success)

	assert.Equal(t, "texts", got.Mode)
	assert.Equal(t, []string{"report one", "report two"}, got.Texts)
	assert.Equal(t, "field-reports", got.Name)
	assert.Empty(t, got.Query)
	assert.Empty(t, got.DocumentIDs)
}

func TestDocumentSetID_RoundTripsUnmodified(t *testing.T) {
	const id = "ds 2024/panama#01" // awkward on purpose: must survive path escaping

	var createPath, assetPath, resultsPath string
	var assetBody createAssetRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/document_sets":
			createPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]any{"document_set_id": id})
		case r.Method == http.MethodPost:
			assetPath = r.URL.Path
			json.NewDecoder(r.Body).Decode(&assetBody)
			json.NewEncoder(w).Encode(map[string]any{"asset_id": "as-1", "status": "queued"})
		default:
			resultsPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]any{"documents": []any{}})
		}
	}))
	defer ts.Close()

	c := testClient(ts)
	ctx := context.Background()

	env, err := c.CreateDocumentSetFromText(ctx, []string{"x"}, "")
	require.NoError(t, err)
	ds, err := CreatedDocumentSet(env)
	require.NoError(t, err)
	require.Equal(t, id, ds.ID)
	require.Equal(t, "/v1/document_sets", createPath)

	env, err = c.CreateNarrativeLookup(ctx, ds.ID)
	require.NoError(t, err)
	require.True(t, env.Success)
	assert.Equal(t, id, assetBody.DocumentSetID, "ID must pass through unmodified")
	assert.Equal(t, "/v1/assets/narrative-lookup", assetPath)

	env, err = c.GetAssetResults(ctx, "narrative-lookup", "as-1")
	require.NoError(t, err)
	require.True(t, env.Success)
	assert.Equal(t, "/v1/assets/narrative-lookup/as-1/results", resultsPath)
}

func TestGetDocumentSet_RequiresID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer ts.Close()

	_, err := testClient(ts).GetDocumentSet(context.Background(), "")
	require.Error(t, err)

	_, err = testClient(ts).DeleteDocumentSet(context.Background(), "")
	require.Error(t, err)
}
