package vaultauth

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// NewStaticProvider returns a provider that always yields the given token.
// A blank token resolves as a credential-not-found error rather than a
// usable credential.
func NewStaticProvider(token string) CredentialsProvider {
	return &staticProvider{token: token}
}

type staticProvider struct {
	token string
}

func (p *staticProvider) GetCredentials(_ context.Context) (*Credential, error) {
	if strings.TrimSpace(p.token) == "" {
		return nil, fmt.Errorf("no static token configured: %w", ErrCredentialsNotFound)
	}

	return &Credential{Token: p.token}, nil
}

// NewFileProvider returns a provider that reads the token from the
// conventional $HOME/.vault-token file, as written by the vault CLI.
//
// The token is not managed by this package, and will not be renewed or
// revoked. It is the responsibility of the caller to manage the token.
//
// See also https://www.vaultproject.io/docs/auth/token
func NewFileProvider() CredentialsProvider {
	return &fileProvider{fsys: os.DirFS("/")}
}

type fileProvider struct {
	fsys fs.FS
}

func (p *fileProvider) GetCredentials(_ context.Context) (*Credential, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home directory not known: %w", ErrCredentialsNotFound)
	}

	name := path.Join(homeDir, ".vault-token")
	name = strings.TrimPrefix(name, "/")

	b, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("readFile %q: %w", name, ErrCredentialsNotFound)
	}

	token := strings.TrimSpace(string(b))
	if token == "" {
		return nil, fmt.Errorf("token file %q is empty: %w", name, ErrCredentialsNotFound)
	}

	return &Credential{Token: token}, nil
}
