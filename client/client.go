package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
)

// Platform names reported by Client.Platform.
const (
	PlatformDesktop = "desktop"
	PlatformWeb     = "web"
)

// Client is the single entry point for API calls. The transport is chosen
// once in New and never changes.
type Client struct {
	mode      Mode
	host      Host
	baseURL   string
	http      *http.Client
	transport Transport
	bridge    *BridgeTransport
	network   *NetworkTransport
}

type Option func(*Client)

// WithBaseURL sets the HTTP API base URL used in network mode.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets the HTTP client used in network mode.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New picks bridge mode when caps carries a host, network mode otherwise.
func New(caps Capabilities, opts ...Option) *Client {
	c := &Client{}
	for _, o := range opts {
		o(c)
	}

	if caps.BridgeAvailable() {
		c.mode = ModeBridge
		c.host = caps.Host
		c.bridge = NewBridgeTransport(caps.Host)
		c.transport = c.bridge
	} else {
		c.mode = ModeNetwork
		c.network = NewNetworkTransport(c.baseURL, c.http)
		c.transport = c.network
	}

	logger.Infof("API client initialized in %s mode", c.mode)
	return c
}

func (c *Client) Mode() Mode {
	return c.mode
}

// Platform reports "desktop" in bridge mode and "web" otherwise.
func (c *Client) Platform() string {
	if c.mode == ModeBridge {
		return PlatformDesktop
	}
	return PlatformWeb
}

// Do sends r through the selected transport.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	return c.transport.Do(ctx, r)
}

func (c *Client) Get(ctx context.Context, path string, params Params) (json.RawMessage, error) {
	return c.Do(ctx, Request{Verb: api.GET, Path: path, Params: params})
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Verb: api.POST, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Verb: api.PUT, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Verb: api.DELETE, Path: path})
}

// Get issues a GET and decodes the result into T.
func Get[T any](ctx context.Context, c *Client, path string, params Params) (T, error) {
	return decode[T](c.Get(ctx, path, params))
}

func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return decode[T](c.Post(ctx, path, body))
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return decode[T](c.Put(ctx, path, body))
}

func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return decode[T](c.Delete(ctx, path))
}

// decode turns a raw result into T. No content decodes to the zero value.
func decode[T any](raw json.RawMessage, err error) (T, error) {
	var v T
	if err != nil {
		return v, err
	}
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &DecodeError{URL: "result", Err: err}
	}
	return v, nil
}

// Window applies a window-control op. It does nothing outside the desktop shell.
func (c *Client) Window(ctx context.Context, op api.WindowOp) error {
	if c.mode != ModeBridge {
		return nil
	}
	if err := c.host.Window(ctx, op); err != nil {
		return fmt.Errorf("window %s: %w", op, err)
	}
	return nil
}

func (c *Client) Minimize(ctx context.Context) error { return c.Window(ctx, api.WindowMinimize) }

func (c *Client) ToggleMaximize(ctx context.Context) error {
	return c.Window(ctx, api.WindowToggleMaximize)
}

func (c *Client) CloseWindow(ctx context.Context) error { return c.Window(ctx, api.WindowClose) }
func (c *Client) HideWindow(ctx context.Context) error  { return c.Window(ctx, api.WindowHide) }

// ShowWindow shows the window and gives it focus.
func (c *Client) ShowWindow(ctx context.Context) error {
	if err := c.Window(ctx, api.WindowShow); err != nil {
		return err
	}
	return c.Window(ctx, api.WindowFocus)
}
