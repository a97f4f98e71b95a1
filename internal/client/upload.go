// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/fieldscope/internal/httputil"
	"github.com/pdiddy/fieldscope/pkg/types"
)

const uploadPath = "/v1/upload/documents"

// uploadResponse is the wire shape of the upload endpoint.
type uploadResponse struct {
	Documents []types.Document `json:"documents"`
}

// UploadDocuments uploads local PDF files as a multipart request and
// returns the envelope carrying the server-assigned document IDs.
// Unreadable local files are usage errors and fail fast before any
// network call.
func (c *Client) UploadDocuments(ctx context.Context, paths []string) (types.Envelope, error) {
	if err := validation.Validate(paths, validation.Required.Error("file list must not be empty")); err != nil {
		return types.Envelope{}, fmt.Errorf("upload documents: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return types.Envelope{}, fmt.Errorf("upload documents: %w", err)
		}
		part, err := mw.CreateFormFile("files", filepath.Base(path))
		if err != nil {
			f.Close()
			return types.Envelope{}, fmt.Errorf("upload documents: building form: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return types.Envelope{}, fmt.Errorf("upload documents: reading %s: %w", path, err)
		}
		f.Close()
	}
	if err := mw.Close(); err != nil {
		return types.Envelope{}, fmt.Errorf("upload documents: finishing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+uploadPath, &buf)
	if err != nil {
		return types.Envelope{}, fmt.Errorf("upload documents: creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, 0)
	if err != nil {
		return types.Fail(0, fmt.Sprintf("POST %s: %v", uploadPath, err)), nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Fail(resp.StatusCode, fmt.Sprintf("reading response body: %v", err)), nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return types.Fail(resp.StatusCode, serverError(resp.StatusCode, data)), nil
	}
	if len(data) > 0 && !json.Valid(data) {
		return types.Fail(resp.StatusCode, "malformed response body"), nil
	}
	return types.OK(resp.StatusCode, data), nil
}

// UploadedDocuments decodes the payload of a successful upload envelope.
func UploadedDocuments(env types.Envelope) ([]types.Document, error) {
	var ur uploadResponse
	if err := env.Decode(&ur); err != nil {
		return nil, fmt.Errorf("parsing upload response: %w", err)
	}
	return ur.Documents, nil
}
