// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "fieldscope/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root, e.g. "https://engines.example.com".
	// Endpoint paths from the OpenAPI contract are appended to it.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// PollConfig holds settings for the asset-completion poller.
type PollConfig struct {
	// Interval is the delay between consecutive status checks
	// (default 10s).
	Interval time.Duration `json:"interval" yaml:"interval"`

	// MaxWait bounds the total time spent polling one asset
	// (default 15m). Exceeding it yields a timeout failure envelope.
	MaxWait time.Duration `json:"max_wait" yaml:"max_wait"`
}

// WorkflowConfig holds the file-based inputs and outputs of the batch
// workflow. Defaults let the workflow commands run with no flags.
type WorkflowConfig struct {
	// ReportsDir is the folder of PDF field reports to upload.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`

	// DocumentSetIDFile is where the upload step writes the created
	// document-set ID and where the analyze step reads it back.
	DocumentSetIDFile string `json:"document_set_id_file" yaml:"document_set_id_file"`

	// ResultsDir is the directory for persisted per-asset results.
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// ResultsFile is the persisted targeted-sentiment results JSON,
	// the file the summarize step and the dashboard read.
	ResultsFile string `json:"results_file" yaml:"results_file"`

	// AssetKinds lists the analysis assets the analyze step creates.
	// Empty means all supported kinds.
	AssetKinds []AssetKind `json:"asset_kinds" yaml:"asset_kinds"`

	// DocumentSetName is the label given to the created set.
	DocumentSetName string `json:"document_set_name" yaml:"document_set_name"`
}

// StoreConfig holds settings for the local run-history store.
type StoreConfig struct {
	// DataDir is the base directory for local state (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// DashboardConfig holds settings for the dashboard server.
type DashboardConfig struct {
	// Addr is the listen address, e.g. ":8350".
	Addr string `json:"addr" yaml:"addr"`

	// ResultsFile is the persisted results JSON the dashboard serves.
	ResultsFile string `json:"results_file" yaml:"results_file"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Client    ClientConfig    `json:"client" yaml:"client"`
	Poll      PollConfig      `json:"poll" yaml:"poll"`
	Workflow  WorkflowConfig  `json:"workflow" yaml:"workflow"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
}
