package etcd

import (
	"context"
	"net/http"
	"time"

	"github.com/QQGoblin/etcdv2-sdk/pkg/document"
	"github.com/QQGoblin/etcdv2-sdk/pkg/httputils"
	"github.com/pkg/errors"
)

// LeaderStats returns the leader statistics document as the server
// sent it.
func (c *Client) LeaderStats(ctx context.Context) (document.Document, error) {
	return c.stats(ctx, "leader")
}

// SelfStats returns this member's statistics document.
func (c *Client) SelfStats(ctx context.Context) (document.Document, error) {
	return c.stats(ctx, "self")
}

// StoreStats returns the key-value store statistics document.
func (c *Client) StoreStats(ctx context.Context) (document.Document, error) {
	return c.stats(ctx, "store")
}

func (c *Client) stats(ctx context.Context, which string) (document.Document, error) {
	var doc document.Document
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodGet, httputils.JoinPath("stats", which), nil, &doc); err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

// Version returns the server and cluster version document.
func (c *Client) Version(ctx context.Context) (document.Document, error) {
	var doc document.Document
	if err := c.invokeBase(ctx, "version", &doc); err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

// Health returns the server health document.
func (c *Client) Health(ctx context.Context) (document.Document, error) {
	var doc document.Document
	if err := c.invokeBase(ctx, "health", &doc); err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

// DebugVars returns the expvar dump of the server.
func (c *Client) DebugVars(ctx context.Context) (document.Document, error) {
	var doc document.Document
	if err := c.invokeBase(ctx, "debug/vars", &doc); err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

var logLevels = map[string]struct{}{
	"DEBUG":    {},
	"INFO":     {},
	"WARNING":  {},
	"ERROR":    {},
	"CRITICAL": {},
}

// SetLogLevel changes the server's local log level. Level must be one
// of DEBUG, INFO, WARNING, ERROR or CRITICAL.
func (c *Client) SetLogLevel(ctx context.Context, level string) error {
	if _, ok := logLevels[level]; !ok {
		return errors.Errorf("invalid log level %q", level)
	}
	content := map[string]string{"Level": level}
	return c.invokeAPI(ctx, jsonCodec{}, http.MethodPut, "config/local/log", content, nil)
}

// WaitHealthy polls the health endpoint at a constant interval until it
// answers, and returns the last health document.
func (c *Client) WaitHealthy(interval time.Duration, attempts uint64) (document.Document, error) {
	data, err := httputils.Healthz(c.httpClient.Client, httputils.JoinPath(c.baseURL, "health"), interval, attempts)
	if err != nil {
		return document.Document{}, err
	}
	return document.Parse(data)
}
