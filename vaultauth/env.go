package vaultauth

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
	"github.com/hashicorp/vault/api/auth/userpass"
	"github.com/peakview/go-vaultclient/internal/env"
)

// TokenEnvVar is the environment variable consulted by the environment
// credential provider.
const TokenEnvVar = "VAULT_TOKEN"

// NewEnvProvider returns a provider that resolves the token from the
// $VAULT_TOKEN environment variable. If $VAULT_TOKEN is unset but
// $VAULT_TOKEN_FILE is set, the referenced file is read instead.
func NewEnvProvider() CredentialsProvider {
	return &envProvider{fsys: os.DirFS("/")}
}

type envProvider struct {
	fsys fs.FS
}

func (p *envProvider) GetCredentials(_ context.Context) (*Credential, error) {
	token := env.GetenvFS(p.fsys, TokenEnvVar)
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("$%s not set: %w", TokenEnvVar, ErrCredentialsNotFound)
	}

	return &Credential{Token: token}, nil
}

// EnvChain builds a chain from whatever the environment configures, in
// order of precedence:
//
// # approle
//
// Included when $VAULT_ROLE_ID is set; the secretID is read from
// $VAULT_SECRET_ID at login time. The default mount path can be overridden
// with $VAULT_AUTH_APPROLE_MOUNT.
//
// # github
//
// Included when $VAULT_AUTH_GITHUB_TOKEN is set. The default mount path can
// be overridden with $VAULT_AUTH_GITHUB_MOUNT.
//
// # userpass
//
// Included when $VAULT_AUTH_USERNAME is set; the password is read from
// $VAULT_AUTH_PASSWORD at login time. The default mount path can be
// overridden with $VAULT_AUTH_USERPASS_MOUNT.
//
// # token
//
// Always included, in order: $VAULT_TOKEN (see [NewEnvProvider]), the
// vault.token process property (see [NewPropertyProvider]), and the
// $HOME/.vault-token file (see [NewFileProvider]).
//
// Note that this chain is provided as a convenience, and is not intended to
// be heavily depended upon. It is recommended that you construct the
// providers directly, and configure them with the appropriate options.
func EnvChain(client *api.Client, opts ...ChainOption) *CredentialsProviderChain {
	providers := []CredentialsProvider{}

	if p := envAppRoleProvider(client); p != nil {
		providers = append(providers, p)
	}

	if p := envGitHubProvider(client); p != nil {
		providers = append(providers, p)
	}

	if p := envUserPassProvider(client); p != nil {
		providers = append(providers, p)
	}

	providers = append(providers,
		NewEnvProvider(),
		NewPropertyProvider(),
		NewFileProvider(),
	)

	// the token providers guarantee a non-empty list
	chain, _ := NewChain(providers, opts...)

	return chain
}

// envAppRoleProvider builds an approle provider from environment variables,
// for use only with [EnvChain]
func envAppRoleProvider(client *api.Client) CredentialsProvider {
	roleID := os.Getenv("VAULT_ROLE_ID")
	if roleID == "" {
		return nil
	}

	secretID := &approle.SecretID{FromEnv: "VAULT_SECRET_ID"}

	var opts []approle.LoginOption

	mountPath := os.Getenv("VAULT_AUTH_APPROLE_MOUNT")
	if mountPath != "" {
		opts = []approle.LoginOption{approle.WithMountPath(mountPath)}
	}

	a, err := approle.NewAppRoleAuth(roleID, secretID, opts...)
	if err != nil {
		return nil
	}

	return &loginProvider{client: client, auth: a, method: "approle"}
}

// envGitHubProvider builds a github provider from environment variables,
// for use only with [EnvChain]
func envGitHubProvider(client *api.Client) CredentialsProvider {
	if os.Getenv("VAULT_AUTH_GITHUB_TOKEN") == "" {
		return nil
	}

	var opts []GitHubOption

	mountPath := os.Getenv("VAULT_AUTH_GITHUB_MOUNT")
	if mountPath != "" {
		opts = []GitHubOption{WithGitHubMountPath(mountPath)}
	}

	token := &GitHubToken{FromEnv: "VAULT_AUTH_GITHUB_TOKEN"}

	p, err := NewGitHubProvider(client, token, opts...)
	if err != nil {
		return nil
	}

	return p
}

// envUserPassProvider builds a userpass provider from environment
// variables, for use only with [EnvChain]
func envUserPassProvider(client *api.Client) CredentialsProvider {
	username := os.Getenv("VAULT_AUTH_USERNAME")
	if username == "" {
		return nil
	}

	password := &userpass.Password{FromEnv: "VAULT_AUTH_PASSWORD"}

	var opts []userpass.LoginOption

	mountPath := os.Getenv("VAULT_AUTH_USERPASS_MOUNT")
	if mountPath != "" {
		opts = []userpass.LoginOption{userpass.WithMountPath(mountPath)}
	}

	a, err := userpass.NewUserpassAuth(username, password, opts...)
	if err != nil {
		return nil
	}

	return &loginProvider{client: client, auth: a, method: "userpass"}
}
