package vaultauth

import (
	"context"
	"fmt"
	"path"

	"github.com/hashicorp/vault/api"
)

// loginProvider adapts an api.AuthMethod into a CredentialsProvider by
// performing the remote login against the given client.
type loginProvider struct {
	client *api.Client
	auth   api.AuthMethod
	method string
}

var _ CredentialsProvider = (*loginProvider)(nil)

func (p *loginProvider) GetCredentials(ctx context.Context) (*Credential, error) {
	secret, err := p.auth.Login(ctx, p.client)
	if err != nil {
		return nil, fmt.Errorf("vault %s login failed: %w", p.method, err)
	}

	return credentialFromSecret(secret)
}

// remoteAuth performs a login write to auth/<mount>/login[/<extra>].
func remoteAuth(ctx context.Context, client *api.Client, mount, extra string, vars map[string]interface{}) (*api.Secret, error) {
	p := path.Join("auth", mount, "login", extra)

	secret, err := client.Logical().WriteWithContext(ctx, p, vars)
	if err != nil {
		return nil, fmt.Errorf("vault write to %s failed: %w", p, err)
	}

	return secret, nil
}
