package vaultauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/vault/api"
)

// Credential carries a Vault client token, plus whatever lease metadata the
// auth method that produced it returned. A Credential is immutable once
// constructed.
type Credential struct {
	// Token is the client token to send on authenticated requests.
	Token string

	// Policies lists the policies attached to the token, when known.
	Policies []string

	// LeaseDuration is the token's lease duration in seconds, when known.
	LeaseDuration int

	// Renewable reports whether the token's lease can be renewed.
	Renewable bool
}

// ErrCredentialsNotFound indicates that a provider's source is unavailable
// or holds no usable token. Providers wrap this sentinel for expected
// resolution failures, and the chain treats such errors as "try the next
// provider" rather than something worth a warning.
var ErrCredentialsNotFound = errors.New("vault credentials not found")

// CredentialsProvider is a source capable of producing a Vault credential.
type CredentialsProvider interface {
	// GetCredentials returns a credential for authenticating to Vault.
	// Implementations return an error wrapping [ErrCredentialsNotFound]
	// when the source is unavailable or empty.
	GetCredentials(ctx context.Context) (*Credential, error)
}

// credentialFromSecret maps a login response to a Credential, preventing
// Vault API types from leaking to callers.
func credentialFromSecret(secret *api.Secret) (*Credential, error) {
	if secret == nil || secret.Auth == nil || secret.Auth.ClientToken == "" {
		return nil, fmt.Errorf("login response contained no client token: %w",
			ErrCredentialsNotFound)
	}

	return &Credential{
		Token:         secret.Auth.ClientToken,
		Policies:      secret.Auth.Policies,
		LeaseDuration: secret.Auth.LeaseDuration,
		Renewable:     secret.Auth.Renewable,
	}, nil
}
