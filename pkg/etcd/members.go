package etcd

import (
	"context"
	"net/http"

	"github.com/QQGoblin/etcdv2-sdk/pkg/httputils"
	"github.com/pkg/errors"
)

// Members lists the current cluster members.
func (c *Client) Members(ctx context.Context) ([]Member, error) {
	var envelope struct {
		Members []Member `json:"members"`
	}
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodGet, "members", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Members, nil
}

// AddMember registers a new member by its peer URLs.
func (c *Client) AddMember(ctx context.Context, peerURLs []string) (*Member, error) {
	content := map[string][]string{"peerURLs": peerURLs}
	member := &Member{}
	if err := c.invokeAPI(ctx, jsonCodec{}, http.MethodPost, "members", content, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember removes a member by id.
func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.invokeAPI(ctx, jsonCodec{}, http.MethodDelete, httputils.JoinPath("members", id), nil, nil)
}

// DeleteMemberByName resolves name against the current member list and
// deletes the match. Listing and deleting are two separate requests;
// membership may change in between.
func (c *Client) DeleteMemberByName(ctx context.Context, name string) error {
	members, err := c.Members(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.Name == name {
			return c.DeleteMember(ctx, m.ID)
		}
	}
	return errors.Wrapf(ErrMemberNotFound, "name %q", name)
}

// DeleteMemberByPeerURL resolves peerURL against the current member
// list and deletes the owning member.
func (c *Client) DeleteMemberByPeerURL(ctx context.Context, peerURL string) error {
	members, err := c.Members(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		for _, u := range m.PeerURLs {
			if u == peerURL {
				return c.DeleteMember(ctx, m.ID)
			}
		}
	}
	return errors.Wrapf(ErrMemberNotFound, "peer url %q", peerURL)
}
