// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client is a thin Go client for the document-analysis API:
// document sets, search, and analysis assets. Each operation maps one
// method to one HTTP endpoint, validates its arguments locally, and
// returns a uniform result envelope. Ordinary remote failures live in
// the envelope; the error return carries local usage errors only.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/fieldscope/internal/httputil"
	"github.com/pdiddy/fieldscope/pkg/types"
)

const defaultUserAgent = "fieldscope/0.1"

// Client issues authenticated requests against one API deployment.
// The bearer token is read once at startup and used read-only for the
// process lifetime.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	UserAgent  string
}

// New builds a Client from configuration and a bearer token.
func New(cfg types.ClientConfig, token string) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		BaseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		Token:      token,
		UserAgent:  ua,
	}
}

// do performs one authenticated call and wraps the outcome in an
// envelope. Rate-limit responses are retried with backoff before the
// outcome is wrapped. It never returns an error for a remote failure:
// non-2xx statuses, network errors, and malformed bodies all come back
// as failure envelopes.
func (c *Client) do(ctx context.Context, method, path string, body any) types.Envelope {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return types.Fail(0, fmt.Sprintf("encoding request body: %v", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return types.Fail(0, fmt.Sprintf("creating request: %v", err))
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, 0)
	if err != nil {
		return types.Fail(0, fmt.Sprintf("%s %s: %v", method, path, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Fail(resp.StatusCode, fmt.Sprintf("reading response body: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return types.Fail(resp.StatusCode, serverError(resp.StatusCode, data))
	}

	if len(data) > 0 && !json.Valid(data) {
		return types.Fail(resp.StatusCode, "malformed response body")
	}
	return types.OK(resp.StatusCode, data)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
}

// serverError extracts the server's reported message from an error
// response body. Falls back to the bare HTTP status when the body is
// not the documented {"detail": ...} / {"error": ...} shape.
func serverError(statusCode int, body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
