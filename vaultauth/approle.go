package vaultauth

import (
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
)

// NewAppRoleProvider returns a provider that logs in with the approle auth
// method, using the given client to reach Vault.
//
// Use [approle.WithMountPath] to override the default "approle" mount, and
// [approle.WithWrappingToken] for response-wrapped secret IDs. The secret
// ID may also be sourced from an environment variable or file by
// constructing the [approle.SecretID] accordingly and using
// [NewAppRoleAuthProvider] instead.
//
// See also https://www.vaultproject.io/docs/auth/approle
func NewAppRoleProvider(client *api.Client, roleID, secretID string, opts ...approle.LoginOption) (CredentialsProvider, error) {
	return NewAppRoleAuthProvider(client, roleID,
		&approle.SecretID{FromString: secretID}, opts...)
}

// NewAppRoleAuthProvider is like [NewAppRoleProvider], but takes an
// [approle.SecretID] so the secret ID can be sourced from a file or
// environment variable.
func NewAppRoleAuthProvider(client *api.Client, roleID string, secretID *approle.SecretID, opts ...approle.LoginOption) (CredentialsProvider, error) {
	a, err := approle.NewAppRoleAuth(roleID, secretID, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid approle configuration: %w", err)
	}

	return &loginProvider{client: client, auth: a, method: "approle"}, nil
}
