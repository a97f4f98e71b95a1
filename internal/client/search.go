// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/fieldscope/pkg/types"
)

const searchPath = "/v1/search"

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// searchResponse is the wire shape of the search endpoint.
type searchResponse struct {
	Total int               `json:"total"`
	Hits  []types.SearchHit `json:"hits"`
}

// Search runs a server-side document search. Limit <= 0 leaves the
// server default in place.
func (c *Client) Search(ctx context.Context, query string, limit int) (types.Envelope, error) {
	if err := validation.Validate(query, validation.Required.Error("query must not be empty")); err != nil {
		return types.Envelope{}, fmt.Errorf("search: %w", err)
	}
	return c.do(ctx, http.MethodPost, searchPath, searchRequest{Query: query, Limit: limit}), nil
}

// SearchHits decodes the payload of a successful search envelope.
func SearchHits(env types.Envelope) ([]types.SearchHit, error) {
	var sr searchResponse
	if err := env.Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return sr.Hits, nil
}
