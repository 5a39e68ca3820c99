package vaultauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoProviders is returned by NewChain when constructed without any
	// providers.
	ErrNoProviders = errors.New("no credentials providers specified")

	// ErrChainExhausted is returned by the chain when every provider has
	// been tried and none yielded a usable token.
	ErrChainExhausted = errors.New("unable to find credentials from any provider in the chain")
)

// CredentialsProviderChain is a CredentialsProvider that chains together
// multiple providers, trying them in the order given at construction. The
// first provider to return a non-blank token is remembered and used
// directly on subsequent calls; this can be disabled with
// [CredentialsProviderChain.SetReuseLastProvider].
//
// An individual provider's failure never aborts the walk - only exhausting
// the whole list is an error. A chain is itself a CredentialsProvider, so
// chains may nest.
//
// The chain is safe for concurrent use.
type CredentialsProviderChain struct {
	log logrus.FieldLogger

	mu        sync.Mutex
	lastUsed  CredentialsProvider
	reuseLast bool

	providers []CredentialsProvider
}

var _ CredentialsProvider = (*CredentialsProviderChain)(nil)

// ChainOption configures a CredentialsProviderChain.
type ChainOption func(*CredentialsProviderChain)

// WithChainLogger sets the logger used when providers fail. The default is
// [logrus.StandardLogger].
func WithChainLogger(log logrus.FieldLogger) ChainOption {
	return func(c *CredentialsProviderChain) {
		c.log = log
	}
}

// NewChain builds a chain from the given providers. At least one provider
// must be supplied, otherwise [ErrNoProviders] is returned.
func NewChain(providers []CredentialsProvider, opts ...ChainOption) (*CredentialsProviderChain, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	c := &CredentialsProviderChain{
		providers: append([]CredentialsProvider{}, providers...),
		reuseLast: true,
		log:       logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GetCredentials walks the chain looking for a provider that returns
// credentials with a non-blank token. If a previous call already identified
// a successful provider, and reuse is enabled, that provider is consulted
// directly - its result (or failure) is returned without re-walking the
// chain. Vault tokens can be expensive to acquire, so a winner stays the
// winner until reuse is disabled.
func (c *CredentialsProviderChain) GetCredentials(ctx context.Context) (*Credential, error) {
	c.mu.Lock()
	reuse, last := c.reuseLast, c.lastUsed
	c.mu.Unlock()

	if reuse && last != nil {
		return last.GetCredentials(ctx)
	}

	for _, p := range c.providers {
		creds, err := p.GetCredentials(ctx)

		switch {
		case err == nil && creds != nil && strings.TrimSpace(creds.Token) != "":
			c.mu.Lock()
			c.lastUsed = p
			c.mu.Unlock()

			return creds, nil
		case err == nil:
			// a nil credential or blank token is a miss, not a success
			c.log.WithField("provider", providerName(p)).
				Debug("provider returned no usable token, moving on to next provider")
		case errors.Is(err, ErrCredentialsNotFound):
			c.log.WithField("provider", providerName(p)).WithError(err).
				Debug("failed to resolve vault credentials, moving on to next provider")
		default:
			// unexpected failures must not break the chain, but they
			// deserve more attention than a plain miss
			c.log.WithField("provider", providerName(p)).WithError(err).
				Warn("unexpected error getting vault credentials, moving on to next provider")
		}
	}

	return nil, ErrChainExhausted
}

// ReuseLastProvider reports whether the first successful provider is reused
// on subsequent calls.
func (c *CredentialsProviderChain) ReuseLastProvider() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.reuseLast
}

// SetReuseLastProvider enables or disables reuse of the first successful
// provider. When disabled, every call re-walks the full list in order.
func (c *CredentialsProviderChain) SetReuseLastProvider(reuse bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reuseLast = reuse
}

func providerName(p CredentialsProvider) string {
	return fmt.Sprintf("%T", p)
}
