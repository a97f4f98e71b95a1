// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fieldscope/pkg/types"
)

func TestCreateAsset_RoutesEachKind(t *testing.T) {
	var gotPaths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		w.Write([]byte(`{"asset_id":"as-1","status":"queued"}`))
	}))
	defer ts.Close()

	c := testClient(ts)
	ctx := context.Background()
	for _, kind := range types.AllAssetKinds {
		env, err := c.CreateAsset(ctx, kind, "ds-1")
		require.NoError(t, err)
		assert.True(t, env.Success)
	}

	want := []string{
		"/v1/assets/narrative-lookup",
		"/v1/assets/entity-table",
		"/v1/assets/targeted-sentiment",
		"/v1/assets/narrative-graph",
	}
	assert.Equal(t, want, gotPaths)
}

func TestCreateAsset_UnknownKindRejectedLocally(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer ts.Close()

	c := testClient(ts)
	_, err := c.CreateAsset(context.Background(), types.AssetKind("topic-model"), "ds-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown asset kind")
	assert.Zero(t, hits)
}

func TestCreateAsset_EmptyDocumentSetIDRejectedLocally(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient, BaseURL: "http://unused"}
	_, err := c.CreateAsset(context.Background(), types.AssetEntityTable, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document set ID is required")
}

func TestGetAssetStatus_RequiresID(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient, BaseURL: "http://unused"}
	_, err := c.GetAssetStatus(context.Background(), types.AssetNarrativeLookup, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset ID is required")
}

func TestCreatedAsset_DecodesStatusBody(t *testing.T) {
	env := types.OK(200, []byte(`{"asset_id":"as-9","status":"failed","error":"model overloaded"}`))
	asset, err := CreatedAsset(types.AssetTargetedSentiment, env)
	require.NoError(t, err)
	assert.Equal(t, types.AssetTargetedSentiment, asset.Kind)
	assert.Equal(t, "as-9", asset.ID)
	assert.Equal(t, types.StatusFailed, asset.Status)
	assert.Equal(t, "model overloaded", asset.Error)
	assert.True(t, asset.Status.Terminal())
	assert.True(t, asset.Status.Failed())
}

func TestCreatedAsset_FailureEnvelopeErrors(t *testing.T) {
	env := types.Fail(503, "service unavailable")
	_, err := CreatedAsset(types.AssetNarrativeGraph, env)
	require.Error(t, err)
}
