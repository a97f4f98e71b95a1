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

const documentSetsPath = "/v1/document_sets"

// createDocumentSetRequest is the wire shape for all three creation
// modes. Exactly one of Texts, Query, DocumentIDs is set, selected by
// Mode per the OpenAPI contract.
type createDocumentSetRequest struct {
	Name        string   `json:"name,omitempty"`
	Mode        string   `json:"mode"`
	Texts       []string `json:"texts,omitempty"`
	Query       string   `json:"query,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

// CreateDocumentSetFromText creates a document set from raw text
// documents. An empty text list is rejected locally before any network
// call.
func (c *Client) CreateDocumentSetFromText(ctx context.Context, texts []string, name string) (types.Envelope, error) {
	if err := validation.Validate(texts, validation.Required.Error("text list must not be empty")); err != nil {
		return types.Envelope{}, fmt.Errorf("create document set: %w", err)
	}
	for i, t := range texts {
		if t == "" {
			return types.Envelope{}, fmt.Errorf("create document set: text %d is empty", i)
		}
	}
	return c.do(ctx, http.MethodPost, documentSetsPath, createDocumentSetRequest{
		Name:  name,
		Mode:  "texts",
		Texts: texts,
	}), nil
}

// CreateDocumentSetFromQuery creates a document set from the documents
// matching a server-side search query.
func (c *Client) CreateDocumentSetFromQuery(ctx context.Context, query, name string) (types.Envelope, error) {
	if err := validation.Validate(query, validation.Required.Error("query must not be empty")); err != nil {
		return types.Envelope{}, fmt.Errorf("create document set: %w", err)
	}
	return c.do(ctx, http.MethodPost, documentSetsPath, createDocumentSetRequest{
		Name:  name,
		Mode:  "query",
		Query: query,
	}), nil
}

// CreateDocumentSetFromIDs creates a document set from an explicit list
// of previously uploaded document IDs.
func (c *Client) CreateDocumentSetFromIDs(ctx context.Context, ids []string, name string) (types.Envelope, error) {
	if err := validation.Validate(ids, validation.Required.Error("document ID list must not be empty")); err != nil {
		return types.Envelope{}, fmt.Errorf("create document set: %w", err)
	}
	return c.do(ctx, http.MethodPost, documentSetsPath, createDocumentSetRequest{
		Name:        name,
		Mode:        "document_ids",
		DocumentIDs: ids,
	}), nil
}

// ListDocumentSets fetches every document set owned by the credential.
func (c *Client) ListDocumentSets(ctx context.Context) types.Envelope {
	return c.do(ctx, http.MethodGet, documentSetsPath, nil)
}

// GetDocumentSet fetches one document set including its documents.
func (c *Client) GetDocumentSet(ctx context.Context, id string) (types.Envelope, error) {
	if err := validation.Validate(id, validation.Required.Error("document set ID is required")); err != nil {
		return types.Envelope{}, fmt.Errorf("get document set: %w", err)
	}
	return c.do(ctx, http.MethodGet, documentSetsPath+"/"+url.PathEscape(id), nil), nil
}

// DeleteDocumentSet removes a document set from the server. Documents
// it referenced are not deleted.
func (c *Client) DeleteDocumentSet(ctx context.Context, id string) (types.Envelope, error) {
	if err := validation.Validate(id, validation.Required.Error("document set ID is required")); err != nil {
		return types.Envelope{}, fmt.Errorf("delete document set: %w", err)
	}
	return c.do(ctx, http.MethodDelete, documentSetsPath+"/"+url.PathEscape(id), nil), nil
}

// CreatedDocumentSet decodes the payload of a successful creation call.
func CreatedDocumentSet(env types.Envelope) (types.DocumentSet, error) {
	var ds types.DocumentSet
	if err := env.Decode(&ds); err != nil {
		return types.DocumentSet{}, fmt.Errorf("parsing document set response: %w", err)
	}
	return ds, nil
}
