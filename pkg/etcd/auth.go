package etcd

import (
	"context"
	"net/http"

	"github.com/QQGoblin/etcdv2-sdk/pkg/httputils"
	"k8s.io/klog/v2"
)

// Users lists all auth users.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var envelope struct {
		Users []User `json:"users"`
	}
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodGet, "auth/users", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Users, nil
}

// GetUser fetches a single auth user.
func (c *Client) GetUser(ctx context.Context, name string) (*User, error) {
	user := &User{}
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodGet, httputils.JoinPath("auth/users", name), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUser creates or updates an auth user. The document's User field
// names the account; Password, Roles, Grant and Revoke apply as the
// server interprets them.
func (c *Client) SetUser(ctx context.Context, user User) error {
	return c.invokeAPI(ctx, jsonCodec{}, http.MethodPut, httputils.JoinPath("auth/users", user.User), user, nil)
}

// DeleteUser removes an auth user.
func (c *Client) DeleteUser(ctx context.Context, name string) error {
	return c.invokeAPI(ctx, jsonCodec{}, http.MethodDelete, httputils.JoinPath("auth/users", name), nil, nil)
}

// Roles lists all auth roles.
func (c *Client) Roles(ctx context.Context) ([]Role, error) {
	var envelope struct {
		Roles []Role `json:"roles"`
	}
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodGet, "auth/roles", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Roles, nil
}

// GetRole fetches a single auth role.
func (c *Client) GetRole(ctx context.Context, name string) (*Role, error) {
	role := &Role{}
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodGet, httputils.JoinPath("auth/roles", name), nil, role); err != nil {
		return nil, err
	}
	return role, nil
}

// SetRole creates or updates an auth role.
func (c *Client) SetRole(ctx context.Context, role Role) error {
	return c.invokeAPI(ctx, jsonCodec{}, http.MethodPut, httputils.JoinPath("auth/roles", role.Role), role, nil)
}

// DeleteRole removes an auth role.
func (c *Client) DeleteRole(ctx context.Context, name string) error {
	return c.invokeAPI(ctx, jsonCodec{}, http.MethodDelete, httputils.JoinPath("auth/roles", name), nil, nil)
}

// AuthStatus reports whether authentication is enabled.
func (c *Client) AuthStatus(ctx context.Context) (bool, error) {
	var envelope struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodGet, "auth/enable", nil, &envelope); err != nil {
		return false, err
	}
	return envelope.Enabled, nil
}

// AuthEnable turns authentication on. A failing enable call (commonly:
// auth is already enabled) is swallowed and reported as success; call
// AuthStatus afterwards when certainty is needed.
func (c *Client) AuthEnable(ctx context.Context) error {
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodPut, "auth/enable", nil, nil); err != nil {
		klog.V(4).Infof("auth enable suppressed error: %v", err)
	}
	return nil
}

// AuthDisable turns authentication off.
func (c *Client) AuthDisable(ctx context.Context) error {
	return c.invokeAPI(ctx, jsonCodec{}, http.MethodDelete, "auth/enable", nil, nil)
}
