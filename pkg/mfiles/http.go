package mfiles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// AuthHeader carries the session token on every request.
const AuthHeader = "X-Authentication"

type request struct {
	method   string
	endpoint string
	// body is JSON encoded; raw is sent as is. At most one is set.
	body any
	raw  io.Reader
	// anonymous requests carry no token.
	anonymous bool
}

// send performs the request and returns the response body of a 200 answer.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	url := c.session.Server + strings.TrimPrefix(r.endpoint, "/")

	var reader io.Reader
	contentType := ""
	switch {
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", r.method, r.endpoint, err)
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	case r.raw != nil:
		reader = r.raw
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, url, reader)
	if err != nil {
		return nil, &TransportError{Method: r.method, URL: url, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !r.anonymous {
		req.Header.Set(AuthHeader, c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("request failed", "method", r.method, "endpoint", r.endpoint, "error", err)
		return nil, &TransportError{Method: r.method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: r.method, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	c.log.Debugw("request", "method", r.method, "endpoint", r.endpoint, "status", resp.StatusCode, "bytes", len(body))
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Method: r.method, URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// do sends a JSON request and decodes a JSON answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	raw, err := c.send(ctx, request{method: method, endpoint: endpoint, body: body})
	if err != nil {
		return err
	}
	return decode(method, endpoint, raw, out)
}

func decode(method, endpoint string, raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

// Get performs a GET on endpoint ("path/to/endpoint") and decodes the answer into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// Put performs a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

// Post performs a POST with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out)
}
