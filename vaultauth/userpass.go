package vaultauth

import (
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/userpass"
)

// NewUserPassProvider returns a provider that logs in with the userpass
// auth method, using the given client to reach Vault.
//
// Use [userpass.WithMountPath] to override the default "userpass" mount.
// The password may also be sourced from an environment variable or file by
// constructing the [userpass.Password] accordingly and using
// [NewUserPassAuthProvider] instead.
//
// See also https://www.vaultproject.io/docs/auth/userpass
func NewUserPassProvider(client *api.Client, username, password string, opts ...userpass.LoginOption) (CredentialsProvider, error) {
	return NewUserPassAuthProvider(client, username,
		&userpass.Password{FromString: password}, opts...)
}

// NewUserPassAuthProvider is like [NewUserPassProvider], but takes a
// [userpass.Password] so the password can be sourced from a file or
// environment variable.
func NewUserPassAuthProvider(client *api.Client, username string, password *userpass.Password, opts ...userpass.LoginOption) (CredentialsProvider, error) {
	a, err := userpass.NewUserpassAuth(username, password, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid userpass configuration: %w", err)
	}

	return &loginProvider{client: client, auth: a, method: "userpass"}, nil
}
