package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transport is the boundary capability the engine requires: perform one HTTP
// call and hand back the status and undecoded body. Connection handling,
// auth header injection, and socket-level retries live behind this interface.
type Transport interface {
	Perform(ctx context.Context, req *Request) (*RawResponse, error)
}

// HTTPTransport is the default Transport over net/http.
type HTTPTransport struct {
	baseURL   string
	token     string
	userAgent string
	client    *http.Client
}

// NewHTTPTransport creates a transport for the given API base URL.
// Token may be empty for unauthenticated access.
func NewHTTPTransport(baseURL, token string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
// It returns the transport for chaining.
func (t *HTTPTransport) WithUserAgent(ua string) *HTTPTransport {
	t.userAgent = ua
	return t
}

// WithHTTPClient replaces the underlying *http.Client.
// It returns the transport for chaining.
func (t *HTTPTransport) WithHTTPClient(c *http.Client) *HTTPTransport {
	t.client = c
	return t
}

// Perform executes one request. Connectivity failures are returned as-is;
// HTTP status handling is the engine's job, not the transport's.
func (t *HTTPTransport) Perform(ctx context.Context, req *Request) (*RawResponse, error) {
	u := t.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Verb, u, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		httpReq.Header.Set("Authorization", "token "+t.token)
	}
	if t.userAgent != "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &RawResponse{Status: resp.StatusCode, Body: data}, nil
}
