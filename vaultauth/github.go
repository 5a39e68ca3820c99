package vaultauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/vault/api"
)

// NewGitHubProvider returns a provider that logs in with the GitHub auth
// method, using the given client to reach Vault.
//
// Use [WithGitHubMountPath] to specify the mount path for the GitHub auth
// method. If not specified, the default is "github".
//
// See also https://www.vaultproject.io/docs/auth/github
func NewGitHubProvider(client *api.Client, token *GitHubToken, opts ...GitHubOption) (CredentialsProvider, error) {
	err := token.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid github token: %w", err)
	}

	p := &gitHubProvider{
		client:    client,
		fsys:      os.DirFS("/"),
		mountPath: "github",
		token:     token,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("error from GitHub provider option: %w", err)
		}
	}

	return p, nil
}

// GitHubOption configures a GitHub credential provider.
type GitHubOption func(p *gitHubProvider) error

// WithGitHubMountPath overrides the default "github" auth mount path.
func WithGitHubMountPath(mountPath string) GitHubOption {
	return func(p *gitHubProvider) error {
		p.mountPath = mountPath

		return nil
	}
}

// GitHubToken is a struct that allows you to specify where your application
// is storing the token required for login to the GitHub auth method.
type GitHubToken struct {
	FromFile   string
	FromString string
	FromEnv    string
}

func (token *GitHubToken) validate() error {
	if token == nil {
		return errors.New("github auth method requires a token")
	}

	if token.FromFile == "" && token.FromEnv == "" && token.FromString == "" {
		return errors.New("token for GitHub auth must be provided with a source file, environment variable, or plaintext string")
	}

	if token.FromFile != "" && (token.FromEnv != "" || token.FromString != "") {
		return errors.New("only one source for the token should be specified")
	}

	if token.FromEnv != "" && token.FromString != "" {
		return errors.New("only one source for the token should be specified")
	}

	return nil
}

type gitHubProvider struct {
	client    *api.Client
	fsys      fs.FS
	token     *GitHubToken
	mountPath string
}

func (p *gitHubProvider) GetCredentials(ctx context.Context) (*Credential, error) {
	token := ""

	switch {
	case p.token.FromFile != "":
		t, err := p.readTokenFromFile()
		if err != nil {
			return nil, fmt.Errorf("error reading GitHub token from file: %w", err)
		}

		token = t
	case p.token.FromEnv != "":
		token = os.Getenv(p.token.FromEnv)
		if token == "" {
			return nil, fmt.Errorf("GitHub token environment variable %q not set: %w",
				p.token.FromEnv, ErrCredentialsNotFound)
		}
	default:
		token = p.token.FromString
	}

	secret, err := remoteAuth(ctx, p.client, p.mountPath, "",
		map[string]interface{}{"token": token})
	if err != nil {
		return nil, fmt.Errorf("github login failed: %w", err)
	}

	return credentialFromSecret(secret)
}

func (p *gitHubProvider) readTokenFromFile() (string, error) {
	name := strings.TrimPrefix(p.token.FromFile, "/")

	f, err := p.fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("unable to open file containing GitHub token: %w", ErrCredentialsNotFound)
	}
	defer f.Close()

	// tokens are small, don't read more than 512 bytes
	b, err := io.ReadAll(io.LimitReader(f, 512))
	if err != nil {
		return "", fmt.Errorf("unable to read GitHub token: %w", err)
	}

	// trim any accidentally-added leading or trailing whitespace
	return strings.TrimSpace(string(b)), nil
}
