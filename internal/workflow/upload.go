// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow sequences client operations and the poller into the
// field-reports batch task: upload PDFs, create a document set, create
// analysis assets, wait for completion, persist results, summarize.
// Every step short-circuits on a failed envelope from the previous
// step; there is no partial-completion recovery.
package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fieldscope/internal/client"
	"github.com/pdiddy/fieldscope/pkg/types"
)

const manifestFile = "upload_manifest.yaml"

// uploadManifest records what one upload run sent to the server.
type uploadManifest struct {
	DocumentSetID   string    `yaml:"document_set_id"`
	DocumentSetName string    `yaml:"document_set_name,omitempty"`
	UploadedAt      time.Time `yaml:"uploaded_at"`
	Files           []string  `yaml:"files"`
	DocumentIDs     []string  `yaml:"document_ids"`
}

// Upload scans cfg.ReportsDir for PDF files, uploads them, creates a
// document set from the returned document IDs, and writes the set's ID
// to cfg.DocumentSetIDFile for the analyze step. It returns the
// document-set ID.
func Upload(ctx context.Context, c *client.Client, cfg types.WorkflowConfig, w io.Writer) (string, error) {
	paths, err := findPDFs(cfg.ReportsDir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no PDF files found in %s", cfg.ReportsDir)
	}

	for _, p := range paths {
		fmt.Fprintf(w, "uploading: %s\n", filepath.Base(p))
	}

	env, err := c.UploadDocuments(ctx, paths)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", fmt.Errorf("upload failed: %s", env.Error)
	}

	docs, err := client.UploadedDocuments(env)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	fmt.Fprintf(w, "uploaded %d document(s)\n", len(ids))

	env, err = c.CreateDocumentSetFromIDs(ctx, ids, cfg.DocumentSetName)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", fmt.Errorf("creating document set failed: %s", env.Error)
	}

	ds, err := client.CreatedDocumentSet(env)
	if err != nil {
		return "", err
	}
	if ds.ID == "" {
		return "", fmt.Errorf("server returned a document set without an ID")
	}
	fmt.Fprintf(w, "created document set %s (%d documents)\n", ds.ID, len(ids))

	if err := writeDocumentSetID(cfg.DocumentSetIDFile, ds.ID); err != nil {
		return "", err
	}
	if err := writeManifest(cfg, ds.ID, paths, ids); err != nil {
		fmt.Fprintf(w, "warning: manifest write failed: %v\n", err)
	}
	return ds.ID, nil
}

// findPDFs returns the sorted .pdf paths directly under dir.
func findPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading reports directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func writeDocumentSetID(path, id string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing document set ID file: %w", err)
	}
	return nil
}

func writeManifest(cfg types.WorkflowConfig, docSetID string, files, ids []string) error {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	m := uploadManifest{
		DocumentSetID:   docSetID,
		DocumentSetName: cfg.DocumentSetName,
		UploadedAt:      time.Now().UTC(),
		Files:           names,
		DocumentIDs:     ids,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(filepath.Dir(cfg.DocumentSetIDFile), manifestFile)
	return os.WriteFile(path, data, 0o644)
}

// ReadDocumentSetID loads the document-set ID the upload step wrote.
func ReadDocumentSetID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document set ID file %s: %w", path, err)
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", fmt.Errorf("document set ID file %s is empty", path)
	}
	return id, nil
}
