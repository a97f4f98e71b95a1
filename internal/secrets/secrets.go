// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from plain-text files. The
// primary credential is a single-line bearer token; a missing or
// malformed token file is a fatal local error, not a remote failure.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTokenFile is the token location relative to the working
// directory when no override is configured.
const DefaultTokenFile = ".secrets/api-token"

// LoadToken reads the bearer token from path. The file must contain
// exactly one non-empty line; surrounding whitespace is trimmed.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading credential file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("credential file %s is empty", path)
	}
	if strings.ContainsAny(token, "\r\n") {
		return "", fmt.Errorf("credential file %s must contain a single line", path)
	}
	return token, nil
}

// ResolveToken loads the bearer token from path. When that exact file
// does not exist, the surrounding secrets directory is searched
// instead: a directory holding exactly one secret yields that value,
// anything else keeps the original not-found error. The single-line
// requirement applies either way.
func ResolveToken(path string) (string, error) {
	token, err := LoadToken(path)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	dir := filepath.Dir(path)
	found, loadErr := Load(dir)
	if loadErr != nil {
		return "", loadErr
	}
	if len(found) != 1 {
		return "", err
	}
	for name, value := range found {
		if strings.ContainsAny(value, "\r\n") {
			return "", fmt.Errorf("credential file %s must contain a single line", filepath.Join(dir, name))
		}
		return value, nil
	}
	return "", err
}

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
