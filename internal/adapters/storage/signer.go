// Package storage resolves object storage paths into signed URLs.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

const maxErrorBody = 512

// Signer implements secondary.SignedURLProvider against a Supabase-compatible
// storage API.
type Signer struct {
	baseURL string
	bucket  string
	apiKey  string
	client  *http.Client
}

// NewSigner creates a Signer. A nil client gets a 10 second timeout.
func NewSigner(baseURL, bucket, apiKey string, client *http.Client) *Signer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Signer{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		apiKey:  apiKey,
		client:  client,
	}
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// ResolveSignedURL asks storage for a URL to path that stays valid for ttlSeconds.
// All failures are returned as *secondary.StorageError.
func (s *Signer) ResolveSignedURL(ctx context.Context, path string, ttlSeconds int) (string, error) {
	objectPath := strings.TrimPrefix(path, "/")
	objectPath = strings.TrimPrefix(objectPath, s.bucket+"/")
	if objectPath == "" {
		return "", &secondary.StorageError{Path: path, Err: errors.New("empty object path")}
	}

	payload, err := json.Marshal(signRequest{ExpiresIn: ttlSeconds})
	if err != nil {
		return "", &secondary.StorageError{Path: path, Err: err}
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, url.PathEscape(s.bucket), escapePath(objectPath))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &secondary.StorageError{Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &secondary.StorageError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &secondary.StorageError{Path: path, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	var out signResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &secondary.StorageError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.SignedURL == "" {
		return "", &secondary.StorageError{Path: path, StatusCode: resp.StatusCode, Err: errors.New("response has no signedURL")}
	}

	if strings.HasPrefix(out.SignedURL, "http://") || strings.HasPrefix(out.SignedURL, "https://") {
		return out.SignedURL, nil
	}
	return s.baseURL + "/storage/v1/" + strings.TrimPrefix(out.SignedURL, "/"), nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

var _ secondary.SignedURLProvider = (*Signer)(nil)
