package etcd

import "time"

// Node is a key or directory entry returned by the v2 keys API.
// Directories carry no value; their children arrive in Nodes, and a
// directory with no children may omit the field entirely.
type Node struct {
	Key           string     `json:"key"`
	Value         string     `json:"value,omitempty"`
	Dir           bool       `json:"dir,omitempty"`
	Nodes         Nodes      `json:"nodes,omitempty"`
	ModifiedIndex uint64     `json:"modifiedIndex"`
	CreatedIndex  uint64     `json:"createdIndex"`
	TTL           int64      `json:"ttl,omitempty"`
	Expiration    *time.Time `json:"expiration,omitempty"`
}

type Nodes []*Node

// Response is the envelope wrapping every keys operation.
type Response struct {
	Action   string `json:"action"`
	Node     *Node  `json:"node"`
	PrevNode *Node  `json:"prevNode,omitempty"`
}

// Member is one entry of the cluster member list.
type Member struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PeerURLs   []string `json:"peerURLs"`
	ClientURLs []string `json:"clientURLs"`
}

// User is a v2 auth user document.
type User struct {
	User     string   `json:"user"`
	Password string   `json:"password,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Grant    []string `json:"grant,omitempty"`
	Revoke   []string `json:"revoke,omitempty"`
}

// Role is a v2 auth role document.
type Role struct {
	Role        string       `json:"role"`
	Permissions *Permissions `json:"permissions,omitempty"`
	Grant       *Permissions `json:"grant,omitempty"`
	Revoke      *Permissions `json:"revoke,omitempty"`
}

// Permissions lists the key patterns a role may read or write.
type Permissions struct {
	KV RWPermission `json:"kv"`
}

type RWPermission struct {
	Read  []string `json:"read"`
	Write []string `json:"write"`
}
