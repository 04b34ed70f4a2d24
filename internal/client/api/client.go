// Package api implements the client's request core. Every call to the
// server goes through Client.Do, which tracks the loading flag and the
// last error, applies an optional optimistic mutation before the call
// and reverts it when the call fails.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
)

// Snapshot is the opaque state captured by a Mutation before it runs,
// enough to undo the mutation later.
type Snapshot any

// Mutation is an optimistic local change. Apply performs the change and
// returns a snapshot of the state it replaced; Revert restores that
// snapshot. Apply and Revert are called at most once each per request.
type Mutation interface {
	Apply() Snapshot
	Revert(Snapshot)
}

// Multipart describes a multipart/form-data request body: plain fields
// plus at most one file part.
type Multipart struct {
	Fields    map[string]string
	FileField string
	FileName  string
	File      io.Reader
}

// Client issues requests against the server. Loading and Err reflect
// the most recently started and most recently finished request
// respectively; concurrent callers overwrite each other (last writer
// wins).
type Client struct {
	baseURL string
	hc      *http.Client

	mu      sync.Mutex
	token   string
	loading bool
	lastErr string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
	}
}

// SetToken attaches token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Loading reports whether a request is currently in flight.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the message of the last failed request, or "" when the
// last request succeeded.
func (c *Client) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.lastErr = ""
}

func (c *Client) finish(errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.lastErr = errMsg
}

// Do issues an HTTP request against the server. body may be nil, a
// *Multipart, or any JSON-marshalable value. When m is non-nil it is
// applied before the request and reverted if the request fails. On a
// non-2xx response Do extracts the server's message and returns it
// wrapped in ErrRequestFailed. When out is non-nil a successful
// response body is unmarshaled into it.
func (c *Client) Do(ctx context.Context, method, path string, body any, m Mutation, out any) error {
	c.begin()

	var snapshot Snapshot
	if m != nil {
		snapshot = m.Apply()
	}

	fail := func(msg string) error {
		if m != nil {
			m.Revert(snapshot)
		}
		c.finish(msg)
		return fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fail(genericErrorMessage)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fail(genericErrorMessage)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(genericErrorMessage)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fail(extractMessage(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fail(genericErrorMessage)
		}
	}

	c.finish("")
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var (
		reader      io.Reader
		contentType string
	)

	switch b := body.(type) {
	case nil:
	case *Multipart:
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		for name, value := range b.Fields {
			if err := mw.WriteField(name, value); err != nil {
				return nil, err
			}
		}
		if b.File != nil {
			part, err := mw.CreateFormFile(b.FileField, b.FileName)
			if err != nil {
				return nil, err
			}
			if _, err := io.Copy(part, b.File); err != nil {
				return nil, err
			}
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}
		reader = buf
		contentType = mw.FormDataContentType()
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// extractMessage pulls a human-readable message out of an error
// payload, either {"message": ...} or {"errors": [{"message": ...}]}.
func extractMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return genericErrorMessage
	}
	if payload.Message != "" {
		return payload.Message
	}
	msgs := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return genericErrorMessage
}
