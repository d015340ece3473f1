package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ledgerline/expensectl/pkg/observability"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient creates an HTTP client with the given timeout.
// A zero timeout means requests are bounded only by their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Requester performs JSON requests over a [Doer].
// It holds no mutable state and is safe for concurrent use.
type Requester struct {
	doer Doer
}

// NewRequester wraps doer. A nil doer falls back to a client without timeout.
func NewRequester(doer Doer) *Requester {
	if doer == nil {
		doer = NewHTTPClient(0)
	}
	return &Requester{doer: doer}
}

// Get performs a GET and decodes the JSON response into v.
func (r *Requester) Get(ctx context.Context, url string, v any) error {
	return r.Do(ctx, http.MethodGet, url, nil, v)
}

// Do sends one request and decodes the JSON response into v.
//
// When body is non-nil it is JSON-encoded and sent with
// Content-Type: application/json. When v is nil the response body is
// discarded. The request is never retried.
func (r *Requester) Do(ctx context.Context, method, rawURL string, body, v any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, rawURL, err)
	}
	return nil
}

func (r *Requester) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	hooks := observability.HTTP()
	method, host, path := req.Method, req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)

	start := time.Now()
	resp, err := r.doer.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, redact(req.URL), err)
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if !isSuccess(resp.StatusCode) {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &StatusError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}
	return resp, nil
}

// redact drops user info from u before it lands in an error message.
func redact(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	c := *u
	c.User = nil
	return c.String()
}
