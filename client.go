package vaultclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/peakview/go-vaultclient/vaultauth"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Client talks to a Vault server. It resolves its base URL through a
// URLResolver and its token through a vaultauth.CredentialsProvider, and
// exposes thin wrappers over the server's HTTP API.
//
// The zero value is not usable; construct with [New].
type Client struct {
	api    *api.Client
	log    logrus.FieldLogger
	tracer trace.Tracer

	mu    sync.Mutex
	creds vaultauth.CredentialsProvider
}

type config struct {
	resolver   URLResolver
	addr       string
	creds      vaultauth.CredentialsProvider
	httpClient *http.Client
	maxRetries *int
	timeout    *time.Duration
	namespace  string
	headers    http.Header
	log        logrus.FieldLogger
	tp         trace.TracerProvider
}

// Option configures a Client.
type Option func(*config)

// WithURLResolver sets the resolver used to determine the Vault address.
// The default checks $VAULT_ADDR, then the vault.addr process property.
func WithURLResolver(r URLResolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithAddress pins the Vault address, bypassing resolution. Shorthand for
// WithURLResolver(NewStaticURLResolver(addr)).
func WithAddress(addr string) Option {
	return func(c *config) { c.addr = addr }
}

// WithCredentialsProvider sets the credential source for authenticated
// operations. The default is [vaultauth.EnvChain].
func WithCredentialsProvider(p vaultauth.CredentialsProvider) Option {
	return func(c *config) { c.creds = p }
}

// WithHTTPClient sets a custom HTTP client for the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithMaxRetries sets the number of retries on 5xx responses. The transport
// handles backoff; this layer adds none of its own.
func WithMaxRetries(n int) Option {
	return func(c *config) { c.maxRetries = &n }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = &d }
}

// WithNamespace sets the Vault namespace sent on every request.
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithHeader adds a custom header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *config) {
		if c.headers == nil {
			c.headers = http.Header{}
		}

		c.headers.Add(key, value)
	}
}

// WithLogger sets the logger. The default is [logrus.StandardLogger].
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) { c.log = log }
}

// WithTracerProvider sets the OpenTelemetry tracer provider used to trace
// client operations. The default is the otel global.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tp = tp }
}

// New builds a Client. The Vault address is resolved immediately (fail
// fast); credentials are not resolved until the first authenticated
// operation.
func New(opts ...Option) (*Client, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	resolver := cfg.resolver
	if cfg.addr != "" {
		r, err := NewStaticURLResolver(cfg.addr)
		if err != nil {
			return nil, err
		}

		resolver = r
	}

	if resolver == nil {
		resolver = NewDefaultURLResolver()
	}

	addr, err := resolver.Resolve()
	if err != nil {
		return nil, fmt.Errorf("vault configuration error: %w", err)
	}

	apiCfg := api.DefaultConfig()
	if apiCfg.Error != nil {
		return nil, fmt.Errorf("vault configuration error: %w", apiCfg.Error)
	}

	apiCfg.Address = addr

	if cfg.httpClient != nil {
		apiCfg.HttpClient = cfg.httpClient
	}

	if cfg.maxRetries != nil {
		apiCfg.MaxRetries = *cfg.maxRetries
	}

	if cfg.timeout != nil {
		apiCfg.Timeout = *cfg.timeout
	}

	ac, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("vault client creation failed: %w", err)
	}

	// api.NewClient picks up $VAULT_TOKEN on its own; the credentials
	// provider owns token resolution here
	ac.ClearToken()

	if cfg.namespace != "" {
		ac.SetNamespace(cfg.namespace)
	}

	for k, vs := range cfg.headers {
		for _, v := range vs {
			ac.AddHeader(k, v)
		}
	}

	c := &Client{api: ac, creds: cfg.creds, log: cfg.log}

	if c.creds == nil {
		c.creds = vaultauth.EnvChain(ac)
	}

	if c.log == nil {
		c.log = logrus.StandardLogger()
	}

	tp := cfg.tp
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	c.tracer = tp.Tracer(tracerName)

	return c, nil
}

// APIClient exposes the underlying Vault API client, mainly so that login
// credential providers can be constructed against it.
func (c *Client) APIClient() *api.Client {
	return c.api
}

// SetCredentialsProvider replaces the credential source. Any token already
// attached to the client is cleared, so the next authenticated operation
// resolves credentials afresh. Safe to call concurrently with in-flight
// operations, though which provider an in-flight operation sees is
// unspecified.
func (c *Client) SetCredentialsProvider(p vaultauth.CredentialsProvider) {
	c.mu.Lock()
	c.creds = p
	c.mu.Unlock()

	c.api.ClearToken()
}

// ensureToken resolves credentials and attaches the token, if the client
// does not already carry one.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.api.Token() != "" {
		return nil
	}

	c.mu.Lock()
	provider := c.creds
	c.mu.Unlock()

	creds, err := provider.GetCredentials(ctx)
	if err != nil {
		return fmt.Errorf("vault credential resolution failed: %w", err)
	}

	if creds == nil || creds.Token == "" {
		return fmt.Errorf("vault credential resolution failed: %w",
			vaultauth.ErrCredentialsNotFound)
	}

	c.api.SetToken(creds.Token)
	c.log.Debug("acquired vault token from credentials provider")

	return nil
}
