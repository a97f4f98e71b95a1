// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EntitySentiment is the per-document sentiment record for a single
// entity, keyed by entity ID inside DocumentSentiment.Entities. Field
// names follow the wire schema; the persisted results file uses the
// same shape so the dashboard can read it unchanged.
type EntitySentiment struct {
	EntityName string `json:"entity_name" yaml:"entity_name"`
	EntityType string `json:"entity_type" yaml:"entity_type"`
	Sentiment  string `json:"sentiment" yaml:"sentiment"`
	Mentions   int    `json:"mentions,omitempty" yaml:"mentions,omitempty"`
}

// DocumentSentiment holds the entities found in one document.
type DocumentSentiment struct {
	DocumentID string                     `json:"document_id" yaml:"document_id"`
	Entities   map[string]EntitySentiment `json:"entities" yaml:"entities"`
}

// SentimentResults is the payload of a completed targeted-sentiment
// asset, and the shape of the persisted results JSON file.
type SentimentResults struct {
	DocumentSetID string              `json:"document_set_id" yaml:"document_set_id"`
	Documents     []DocumentSentiment `json:"documents" yaml:"documents"`
}

// EntitySummary is one row of the aggregated entity view: all mentions
// of a named entity across the result set, with conflicting sentiments
// collapsed to "mixed".
type EntitySummary struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Sentiment    string `json:"sentiment" yaml:"sentiment"`
	MentionCount int    `json:"mention_count" yaml:"mention_count"`
}
