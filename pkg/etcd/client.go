package etcd

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"time"

	"github.com/QQGoblin/etcdv2-sdk/pkg/httputils"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	DefaultPort     = 2379
	DefaultProtocol = "http"
	APIPrefix       = "v2"
)

// Config carries the construction parameters of a Client. It is not
// mutated after NewClient returns.
type Config struct {
	Hostname string
	Port     int
	Protocol string
	Username string
	Password string

	// ReadTimeout bounds every request, long-poll waits included. Zero
	// means no client-side timeout.
	ReadTimeout time.Duration

	// The fields below are accepted for API compatibility and stored,
	// but currently have no effect.
	FailoverDomain string
	Failover       bool
	CACert         string
	CertFile       string
	KeyFile        string
	Reconnect      bool
}

// Client talks to a single etcd server over the v2 HTTP API. Every
// operation is synchronous and issues exactly one request; nothing is
// retried or cached.
type Client struct {
	config     Config
	tlsConfig  *tls.Config
	httpClient *httputils.HTTPClient

	baseURL    string
	apiURL     string
	authHeader string
}

type Option func(c *Client)

func WithPort(port int) Option {
	return func(c *Client) {
		c.config.Port = port
	}
}

func WithProtocol(protocol string) Option {
	return func(c *Client) {
		c.config.Protocol = protocol
	}
}

func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.config.Username = username
		c.config.Password = password
	}
}

func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.config.ReadTimeout = timeout
	}
}

// WithFailoverDomain is reserved; the domain is stored but not used.
func WithFailoverDomain(domain string) Option {
	return func(c *Client) {
		c.config.FailoverDomain = domain
	}
}

// WithFailover is reserved; no endpoint failover is performed.
func WithFailover(failover bool) Option {
	return func(c *Client) {
		c.config.Failover = failover
	}
}

// WithTLSFiles is reserved; the paths are stored but not loaded. Use
// WithTLSClientConfig to supply a working TLS configuration.
func WithTLSFiles(caCert, certFile, keyFile string) Option {
	return func(c *Client) {
		c.config.CACert = caCert
		c.config.CertFile = certFile
		c.config.KeyFile = keyFile
	}
}

// WithReconnect is reserved; no automatic reconnection is performed.
func WithReconnect(reconnect bool) Option {
	return func(c *Client) {
		c.config.Reconnect = reconnect
	}
}

func WithTLSClientConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = tlsConfig
	}
}

func NewClient(hostname string, opts ...Option) (*Client, error) {

	c := &Client{
		config: Config{
			Hostname: hostname,
			Port:     DefaultPort,
			Protocol: DefaultProtocol,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.config.Protocol != "http" && c.config.Protocol != "https" {
		return nil, errors.Errorf("unsupported protocol %q, must be http or https", c.config.Protocol)
	}

	c.baseURL = fmt.Sprintf("%s://%s:%d", c.config.Protocol, c.config.Hostname, c.config.Port)
	c.apiURL = httputils.JoinPath(c.baseURL, APIPrefix)

	if c.config.Username != "" {
		c.authHeader = basicAuthHeader(c.config.Username, c.config.Password)
		if c.config.Protocol != "https" && !isLoopback(c.config.Hostname) {
			klog.Warningf("basic auth credentials for %s are sent over plain http", c.config.Hostname)
		}
		if c.config.Failover {
			klog.Warning("basic auth together with failover is not supported")
		}
	}

	httpOpts := []httputils.HTTPOption{
		httputils.WithTimeout(c.config.ReadTimeout),
	}
	if c.tlsConfig != nil {
		httpOpts = append(httpOpts, httputils.WithTlsClientConfig(c.tlsConfig))
	}
	c.httpClient = httputils.NewHTTPClient(httpOpts...)

	return c, nil
}

// Config returns a copy of the construction parameters.
func (c *Client) Config() Config {
	return c.config
}

// BaseURL returns the unversioned endpoint, APIURL the /v2 namespace.
func (c *Client) BaseURL() string { return c.baseURL }
func (c *Client) APIURL() string  { return c.apiURL }

func basicAuthHeader(username, password string) string {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return "Basic " + cred
}

func isLoopback(hostname string) bool {
	if hostname == "localhost" {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

func (c *Client) callOptions(codec httputils.Codec) []httputils.CallOption {
	opts := []httputils.CallOption{httputils.WithCallCodec(codec)}
	if c.authHeader != "" {
		opts = append(opts, httputils.WithHeader(map[string]string{"Authorization": c.authHeader}))
	}
	return opts
}

// invokeAPI issues a request inside the versioned /v2 namespace.
func (c *Client) invokeAPI(ctx context.Context, codec httputils.Codec, method, path string, content, reply interface{}) error {
	return c.httpClient.Invoke(ctx, httputils.JoinPath(c.apiURL, path), method, content, reply, c.callOptions(codec)...)
}

// invokeBase issues a GET outside the versioned namespace (version,
// health, debug vars). These endpoints take no credentials.
func (c *Client) invokeBase(ctx context.Context, path string, reply interface{}) error {
	return c.httpClient.Get(ctx, httputils.JoinPath(c.baseURL, path), reply, httputils.WithCallCodec(rawCodec{}))
}
