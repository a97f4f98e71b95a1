// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/fieldscope/pkg/types"
)

// assetSpec describes how one asset kind maps onto the API: the path
// segment of its endpoints and the request body for creation. A single
// dispatch table keeps the kind set closed; adding a kind means adding
// a row here and a constant in pkg/types.
type assetSpec struct {
	pathSegment string
}

var assetSpecs = map[types.AssetKind]assetSpec{
	types.AssetNarrativeLookup:   {pathSegment: "narrative-lookup"},
	types.AssetEntityTable:       {pathSegment: "entity-table"},
	types.AssetTargetedSentiment: {pathSegment: "targeted-sentiment"},
	types.AssetNarrativeGraph:    {pathSegment: "narrative-graph"},
}

type createAssetRequest struct {
	DocumentSetID string `json:"document_set_id"`
}

// assetStatusResponse is the wire shape of the status endpoint.
type assetStatusResponse struct {
	AssetID string `json:"asset_id"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

func validateAssetArgs(kind types.AssetKind, id string) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown asset kind %q", kind)
	}
	return validation.Validate(id, validation.Required.Error("asset ID is required"))
}

// CreateAsset requests computation of one analysis asset against a
// document set. The document-set ID is passed through unmodified.
func (c *Client) CreateAsset(ctx context.Context, kind types.AssetKind, docSetID string) (types.Envelope, error) {
	if !kind.Valid() {
		return types.Envelope{}, fmt.Errorf("create asset: unknown asset kind %q", kind)
	}
	if err := validation.Validate(docSetID, validation.Required.Error("document set ID is required")); err != nil {
		return types.Envelope{}, fmt.Errorf("create asset: %w", err)
	}
	spec := assetSpecs[kind]
	return c.do(ctx, http.MethodPost, "/v1/assets/"+spec.pathSegment,
		createAssetRequest{DocumentSetID: docSetID}), nil
}

// CreateNarrativeLookup creates a narrative-lookup asset.
func (c *Client) CreateNarrativeLookup(ctx context.Context, docSetID string) (types.Envelope, error) {
	return c.CreateAsset(ctx, types.AssetNarrativeLookup, docSetID)
}

// CreateEntityTable creates an entity-table asset.
func (c *Client) CreateEntityTable(ctx context.Context, docSetID string) (types.Envelope, error) {
	return c.CreateAsset(ctx, types.AssetEntityTable, docSetID)
}

// CreateTargetedSentiment creates a targeted-sentiment asset.
func (c *Client) CreateTargetedSentiment(ctx context.Context, docSetID string) (types.Envelope, error) {
	return c.CreateAsset(ctx, types.AssetTargetedSentiment, docSetID)
}

// CreateNarrativeGraph creates a narrative-graph asset.
func (c *Client) CreateNarrativeGraph(ctx context.Context, docSetID string) (types.Envelope, error) {
	return c.CreateAsset(ctx, types.AssetNarrativeGraph, docSetID)
}

// GetAssetStatus fetches the processing status of one asset.
func (c *Client) GetAssetStatus(ctx context.Context, kind types.AssetKind, id string) (types.Envelope, error) {
	if err := validateAssetArgs(kind, id); err != nil {
		return types.Envelope{}, fmt.Errorf("get asset status: %w", err)
	}
	spec := assetSpecs[kind]
	return c.do(ctx, http.MethodGet,
		"/v1/assets/"+spec.pathSegment+"/"+url.PathEscape(id), nil), nil
}

// GetAssetResults fetches the computed results of a terminal asset.
func (c *Client) GetAssetResults(ctx context.Context, kind types.AssetKind, id string) (types.Envelope, error) {
	if err := validateAssetArgs(kind, id); err != nil {
		return types.Envelope{}, fmt.Errorf("get asset results: %w", err)
	}
	spec := assetSpecs[kind]
	return c.do(ctx, http.MethodGet,
		"/v1/assets/"+spec.pathSegment+"/"+url.PathEscape(id)+"/results", nil), nil
}

// CreatedAsset decodes the payload of a successful asset-creation or
// status envelope into an Asset record.
func CreatedAsset(kind types.AssetKind, env types.Envelope) (types.Asset, error) {
	var resp assetStatusResponse
	if err := env.Decode(&resp); err != nil {
		return types.Asset{}, fmt.Errorf("parsing asset response: %w", err)
	}
	return types.Asset{
		Kind:   kind,
		ID:     resp.AssetID,
		Status: types.AssetStatus(resp.Status),
		Error:  resp.Error,
	}, nil
}
