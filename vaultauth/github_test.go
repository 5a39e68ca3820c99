package vaultauth

import (
	"testing"
	"testing/fstest"

	"github.com/peakview/go-vaultclient/internal/tests/fakevault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubProvider(t *testing.T) {
	mount := "github"
	token := "sometoken"
	ghtoken := "abcd1234"

	client := fakevault.FakeVault(t, fakevault.LoginHandler(t, mount, token))

	ctx := t.Context()

	_, err := NewGitHubProvider(client, nil)
	require.Error(t, err)
	_, err = NewGitHubProvider(client, &GitHubToken{})
	require.Error(t, err)
	_, err = NewGitHubProvider(client, &GitHubToken{FromFile: "foo", FromEnv: "bar"})
	require.Error(t, err)
	_, err = NewGitHubProvider(client, &GitHubToken{FromFile: "foo", FromString: "bar"})
	require.Error(t, err)
	_, err = NewGitHubProvider(client, &GitHubToken{FromEnv: "foo", FromString: "bar"})
	require.Error(t, err)

	p, err := NewGitHubProvider(client, &GitHubToken{FromString: ghtoken})
	require.NoError(t, err)

	creds, err := p.GetCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, creds.Token)
}

func TestGitHubProviderMountPath(t *testing.T) {
	client := fakevault.FakeVault(t, fakevault.LoginHandler(t, "buhtig", "sometoken"))

	ctx := t.Context()

	p, err := NewGitHubProvider(client, &GitHubToken{FromString: "abcd1234"},
		WithGitHubMountPath("buhtig"))
	require.NoError(t, err)

	creds, err := p.GetCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sometoken", creds.Token)
}

func TestGitHubProviderTokenSources(t *testing.T) {
	client := fakevault.FakeVault(t, fakevault.LoginHandler(t, "github", "sometoken"))

	ctx := t.Context()

	// env source, unset - a resolution failure, not a login failure
	p, err := NewGitHubProvider(client, &GitHubToken{FromEnv: "GH_TOKEN_UNSET_VAR"})
	require.NoError(t, err)

	_, err = p.GetCredentials(ctx)
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	// file source
	gp, err := NewGitHubProvider(client, &GitHubToken{FromFile: "/tmp/ghtoken"})
	require.NoError(t, err)

	gp.(*gitHubProvider).fsys = fstest.MapFS{
		"tmp/ghtoken": &fstest.MapFile{Data: []byte("abcd1234\n")},
	}

	creds, err := gp.GetCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sometoken", creds.Token)
}
