package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4 << 10

// NetworkTransport issues requests to the HTTP API.
type NetworkTransport struct {
	baseURL string
	client  *http.Client
}

// NewNetworkTransport targets baseURL. An empty baseURL keeps paths relative.
// A nil client uses http.DefaultClient.
func NewNetworkTransport(baseURL string, client *http.Client) *NetworkTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &NetworkTransport{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (t *NetworkTransport) URL(path string, params Params) string {
	u := t.baseURL + path
	if qs := params.encode(); qs != "" {
		u += "?" + qs
	}
	return u
}

func (t *NetworkTransport) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	if !r.Verb.Valid() {
		return nil, fmt.Errorf("unsupported verb %q", r.Verb)
	}

	var (
		body        io.Reader
		contentType string
		target      = t.baseURL + r.Path
	)
	switch r.Verb {
	case api.GET, api.DELETE:
		target = t.URL(r.Path, r.Params)
	case api.POST, api.PUT:
		if r.Body != nil {
			b, err := json.Marshal(r.Body)
			if err != nil {
				return nil, fmt.Errorf("encode request body: %w", err)
			}
			body = bytes.NewReader(b)
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, string(r.Verb), target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	logger.DebugKV("http request", "method", r.Verb, "url", target)
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, string(r.Verb), target)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", target, err)
	}
	raw = bytes.TrimSpace(raw)
	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		var v any
		return nil, &DecodeError{URL: target, Err: json.Unmarshal(raw, &v)}
	}
	return json.RawMessage(raw), nil
}

func statusError(resp *http.Response, method, target string) error {
	e := &HTTPStatusError{StatusCode: resp.StatusCode, Method: method, URL: target}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb api.ErrorBody
	if json.Unmarshal(b, &eb) == nil {
		e.Message = eb.Error
	}
	return e
}
