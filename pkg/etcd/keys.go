package etcd

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/QQGoblin/etcdv2-sdk/pkg/httputils"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// NoTTL is the ttl argument disabling the ttl form field.
const NoTTL = -1

func keysPath(key string) string {
	return httputils.JoinPath("keys", key)
}

// Get fetches a single key and returns its node.
func (c *Client) Get(ctx context.Context, key string) (*Node, error) {
	var envelope Response
	if err := c.invokeAPI(ctx, formCodec{}, http.MethodGet, keysPath(key), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Node, nil
}

// Ls lists the children of a directory. An empty directory may come
// back without a nodes field at all; that is an empty listing, not an
// error.
func (c *Client) Ls(ctx context.Context, dir string, recursive bool) (Nodes, error) {
	path := keysPath(dir)
	if recursive {
		path += "?recursive=true"
	}
	var envelope Response
	if err := c.invokeAPI(ctx, formCodec{}, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Node == nil {
		return nil, nil
	}
	return envelope.Node.Nodes, nil
}

// Wait blocks until key changes, issuing a single long-poll GET. The
// server decides how long the request stays open; cancel via ctx. The
// full envelope is returned so callers see both node and prevNode.
func (c *Client) Wait(ctx context.Context, key string, waitIndex uint64) (*Response, error) {
	path := keysPath(key) + "?wait=true"
	if waitIndex > 0 {
		path += fmt.Sprintf("&waitIndex=%d", waitIndex)
	}
	var envelope Response
	if err := c.invokeAPI(ctx, formCodec{}, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// Set creates or overwrites key unconditionally. Pass NoTTL to store
// the key without an expiry.
func (c *Client) Set(ctx context.Context, key, value string, ttl int64) (*Node, error) {
	return c.putValue(ctx, keysPath(key), value, ttl)
}

// Create writes key only if it does not exist yet.
func (c *Client) Create(ctx context.Context, key, value string, ttl int64) (*Node, error) {
	return c.putValue(ctx, keysPath(key)+"?prevExist=false", value, ttl)
}

// Update writes key only if it already exists.
func (c *Client) Update(ctx context.Context, key, value string, ttl int64) (*Node, error) {
	return c.putValue(ctx, keysPath(key)+"?prevExist=true", value, ttl)
}

func (c *Client) putValue(ctx context.Context, path, value string, ttl int64) (*Node, error) {
	pairs := Pairs{{Name: "value", Value: value}}
	if ttl != NoTTL {
		pairs = append(pairs, Pair{Name: "ttl", Value: strconv.FormatInt(ttl, 10)})
	}
	var envelope Response
	if err := c.invokeAPI(ctx, formCodec{}, http.MethodPut, path, pairs, &envelope); err != nil {
		return nil, err
	}
	return envelope.Node, nil
}

// Del removes a single key.
func (c *Client) Del(ctx context.Context, key string) (*Node, error) {
	var envelope Response
	if err := c.invokeAPI(ctx, formCodec{}, http.MethodDelete, keysPath(key), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Node, nil
}

// Mkdir creates a directory.
func (c *Client) Mkdir(ctx context.Context, dir string) (*Node, error) {
	pairs := Pairs{{Name: "dir", Value: "true"}}
	var envelope Response
	if err := c.invokeAPI(ctx, formCodec{}, http.MethodPut, keysPath(dir), pairs, &envelope); err != nil {
		return nil, err
	}
	return envelope.Node, nil
}

// Rmdir removes a directory. The server rejects deleting a non-empty
// directory unless recursive is set.
func (c *Client) Rmdir(ctx context.Context, dir string, recursive bool) (*Node, error) {
	path := keysPath(dir) + "?dir=true"
	if recursive {
		path = keysPath(dir) + "?recursive=true"
	}
	var envelope Response
	if err := c.invokeAPI(ctx, formCodec{}, http.MethodDelete, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Node, nil
}

// WaitKeyGone polls Get until the key answers 404, e.g. after its TTL
// expires. The clock is injectable for tests.
func (c *Client) WaitKeyGone(ctx context.Context, key string, interval time.Duration, attempts int, clock clockwork.Clock) error {
	for i := 0; i < attempts; i++ {
		_, err := c.Get(ctx, key)
		if IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(interval):
		}
	}
	return errors.Errorf("key %s still present after %d attempts", key, attempts)
}
