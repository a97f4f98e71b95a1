// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AssetKind identifies one of the analysis asset types the API can
// compute against a document set. The set is closed: each kind has its
// own create endpoint and result shape, selected through a dispatch
// table in the client rather than ad hoc string branches.
type AssetKind string

const (
	AssetNarrativeLookup   AssetKind = "narrative-lookup"
	AssetEntityTable       AssetKind = "entity-table"
	AssetTargetedSentiment AssetKind = "targeted-sentiment"
	AssetNarrativeGraph    AssetKind = "narrative-graph"
)

// AllAssetKinds lists every supported kind in workflow order.
var AllAssetKinds = []AssetKind{
	AssetNarrativeLookup,
	AssetEntityTable,
	AssetTargetedSentiment,
	AssetNarrativeGraph,
}

// Valid reports whether k is one of the supported asset kinds.
func (k AssetKind) Valid() bool {
	switch k {
	case AssetNarrativeLookup, AssetEntityTable, AssetTargetedSentiment, AssetNarrativeGraph:
		return true
	}
	return false
}

func (k AssetKind) String() string { return string(k) }

// AssetStatus is the server-side processing state of an analysis asset.
// Assets are created in StatusQueued, move to StatusProcessing, and end
// in exactly one of the terminal states.
type AssetStatus string

const (
	StatusQueued     AssetStatus = "queued"
	StatusProcessing AssetStatus = "processing"
	StatusCompleted  AssetStatus = "completed"
	StatusFailed     AssetStatus = "failed"
)

// Terminal reports whether the status is a final state: the asset will
// not transition again and results (or the failure reason) are ready.
func (s AssetStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Failed reports whether the status is the terminal failure state.
func (s AssetStatus) Failed() bool { return s == StatusFailed }

// Asset describes a server-side analysis artifact. The client holds
// only the identifying pair (Kind, ID) and transient response data;
// authoritative state lives on the server.
type Asset struct {
	// Kind selects the analysis type.
	Kind AssetKind `json:"kind" yaml:"kind"`

	// ID is the server-assigned asset identifier.
	ID string `json:"asset_id" yaml:"asset_id"`

	// DocumentSetID is the document set the asset was created against.
	DocumentSetID string `json:"document_set_id" yaml:"document_set_id"`

	// Status is the processing state as of the last fetch.
	Status AssetStatus `json:"status" yaml:"status"`

	// Error is the server's reported failure reason, set only when
	// Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
