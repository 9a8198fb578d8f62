// Copyright 2022 Maelstrom Research.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package opal is a client for the Opal data repository's REST API. It
// exposes the project, table, dictionary, taxonomy and file operations that
// mdk consumes, each as a single blocking call. The client never retries a
// failed call and never mutates the session it was built with.
package opal

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

	"github.com/pkg/errors"
)

// Client talks to one Opal server with one set of credentials.
type Client struct {
	base  string
	httpc *http.Client
	user  string
	pass  string
	token string
}

// Option is a functional option type for Client.
type Option func(c *Client)

// OptTimeout is an option which sets the overall per-request timeout.
func OptTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// OptBasicAuth is an option which sets user/password credentials.
func OptBasicAuth(user, pass string) Option {
	return func(c *Client) {
		c.user = user
		c.pass = pass
	}
}

// OptToken is an option which sets a personal access token. It takes
// precedence over basic auth.
func OptToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// OptHTTPClient is an option which replaces the underlying http.Client.
func OptHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpc = h
	}
}

// NewClient creates a Client for the server at base, e.g.
// "https://opal.example.org".
func NewClient(base string, opts ...Option) (*Client, error) {
	if base == "" {
		return nil, errors.New("opal server url is required")
	}
	c := &Client{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{Timeout: time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ServerError is returned when the server answers with a non-2xx status.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a ServerError with status 404.
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if c.token != "" {
		req.Header.Set("X-Opal-Auth", c.token)
	} else if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do performs one JSON round trip. in may be nil; out may be nil when the
// response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(buf)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "calling %s %s", method, path)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ServerError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s response", path)
	}
	return nil
}

// exists turns a GET into an existence check, mapping 404 to false.
func (c *Client) exists(ctx context.Context, path string) (bool, error) {
	err := c.do(ctx, http.MethodGet, path, nil, nil, nil)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Execute performs a no-op server round trip. It is used to validate that
// the session is live before starting a batch of work.
func (c *Client) Execute(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/ws/execute", nil, nil, nil)
}

func escape(seg string) string { return url.PathEscape(seg) }
