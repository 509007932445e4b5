// Package weaviate implements db.Store over the cluster's REST surface.
package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/metrics"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a cluster store.
type Config struct {
	// Endpoint is the REST base URL, e.g. http://localhost:8080.
	Endpoint string
	// APIKey is sent as a bearer token when set.
	APIKey string
	// ExtraHeaders are forwarded on every request. Used for model-provider
	// key headers (X-Openai-Api-Key and friends) that server-side
	// vectorizer modules read.
	ExtraHeaders map[string]string
	Timeout      time.Duration
}

// Store implements db.Store over the cluster REST API.
type Store struct {
	base    *url.URL
	apiKey  string
	headers map[string]string
	client  *http.Client
}

// NewStore creates a cluster store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	base, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("endpoint scheme must be http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Store{
		base:    base,
		apiKey:  cfg.APIKey,
		headers: cfg.ExtraHeaders,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Ping checks cluster readiness.
func (s *Store) Ping(ctx context.Context) error {
	return s.do(ctx, db.OpPing, http.MethodGet, "/v1/.well-known/ready", nil, nil, nil)
}

// Close releases idle connections.
func (s *Store) Close() {
	s.client.CloseIdleConnections()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for cluster: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// statusError is a non-2xx response that did not map onto a sentinel.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.message)
}

// do executes one REST call: body marshaled as JSON when non-nil, response
// decoded into out when non-nil. notFound is the sentinel returned on 404.
// All errors come back wrapped in *db.Error carrying op.
func (s *Store) do(ctx context.Context, op, method, pth string, body, out any, notFound error) error {
	start := time.Now()
	err := s.roundTrip(ctx, method, pth, body, out, notFound)
	metrics.ObserveRemoteCall(op, time.Since(start), err)

	if err != nil {
		return &db.Error{Op: op, Err: err}
	}
	return nil
}

func (s *Store) roundTrip(ctx context.Context, method, pth string, body, out any, notFound error) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := *s.base
	pathPart, query, _ := strings.Cut(pth, "?")
	u.Path = strings.TrimRight(u.Path, "/") + pathPart
	u.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	for k, v := range s.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	msg := readErrorMessage(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", db.ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return notFound
	case resp.StatusCode == http.StatusUnprocessableEntity && strings.Contains(msg, "already exists"):
		return db.ErrClassExists
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", db.ErrUnavailable, resp.StatusCode, msg)
	default:
		return &statusError{code: resp.StatusCode, message: msg}
	}
}

// readErrorMessage extracts the message list from a cluster error payload,
// falling back to the raw body.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Error []struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Error) > 0 {
		msgs := make([]string, 0, len(payload.Error))
		for _, e := range payload.Error {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(string(raw))
}
