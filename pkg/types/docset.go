// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Document is a single uploaded document reference as the server
// reports it. Only identifiers and display metadata; content stays
// server-side.
type Document struct {
	ID       string `json:"document_id" yaml:"document_id"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// DocumentSet is a named, server-side collection of documents used as
// the scope for analysis assets.
type DocumentSet struct {
	// ID is the opaque server-assigned identifier. It is accepted
	// unmodified by every asset-creation and results call.
	ID string `json:"document_set_id" yaml:"document_set_id"`

	// Name is the human-readable label given at creation.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// DocumentCount is the number of documents in the set.
	DocumentCount int `json:"document_count" yaml:"document_count"`

	// Documents lists the member documents when the server includes
	// them (single-set fetches; list responses omit it).
	Documents []Document `json:"documents,omitempty" yaml:"documents,omitempty"`

	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// SearchHit is one document match returned by the search endpoint.
type SearchHit struct {
	DocumentID string  `json:"document_id" yaml:"document_id"`
	Title      string  `json:"title" yaml:"title"`
	Snippet    string  `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Score      float64 `json:"score" yaml:"score"`
}
