// internal/common/httpclient/client.go
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin wrapper over net/http with a bounded per-request timeout
// and an explicit per-backend TLS trust policy. Certificate verification is
// scoped to the client instance, never toggled process-wide.
type Client struct {
	httpClient *http.Client
}

// Options configures the trust policy of a backend client.
type Options struct {
	Timeout time.Duration
	// InsecureSkipVerify disables certificate verification for this client
	// only. Some lab backends run on self-signed certificates.
	InsecureSkipVerify bool
}

func New(opts Options) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// NewWithHTTPClient wraps an existing *http.Client. Tests use this to inject
// a mocked transport.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// Response is a successful (2xx) backend response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON decodes the response body into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Decoded returns the body parsed as JSON when it parses as JSON, otherwise
// the raw text wrapped in a minimal envelope.
func (r *Response) Decoded() interface{} {
	var v interface{}
	if err := json.Unmarshal(r.Body, &v); err == nil {
		return v
	}
	return map[string]interface{}{"message": string(r.Body)}
}

// StatusError is returned for non-success statuses. The raw body is preserved
// so callers can surface upstream diagnostics.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// Do performs a single request. The body, when non-nil, is JSON-encoded.
// There are no retries: each call fails fast and the caller decides.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(data)}
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}

// StatusOf extracts the upstream status from err, or 0 when err is not a
// StatusError.
func StatusOf(err error) int {
	if se, ok := err.(*StatusError); ok {
		return se.Status
	}
	return 0
}

// BodyOf extracts the upstream body from err, or err.Error() as a fallback
// so diagnostics are never lost.
func BodyOf(err error) string {
	if se, ok := err.(*StatusError); ok {
		return se.Body
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
