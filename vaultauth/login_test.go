package vaultauth

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hashicorp/vault/api/auth/userpass"
	"github.com/peakview/go-vaultclient/internal/tests/fakevault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassProvider(t *testing.T) {
	ctx := t.Context()

	client := fakevault.FakeVault(t, fakevault.LoginHandler(t, "userpass", "up-token"))

	_, err := NewUserPassProvider(client, "", "pw")
	require.Error(t, err)

	p, err := NewUserPassProvider(client, "alice", "hunter2")
	require.NoError(t, err)

	creds, err := p.GetCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "up-token", creds.Token)
	assert.Equal(t, []string{"default"}, creds.Policies)
	assert.Equal(t, 3600, creds.LeaseDuration)
	assert.True(t, creds.Renewable)
}

func TestUserPassProviderMountPath(t *testing.T) {
	ctx := t.Context()

	client := fakevault.FakeVault(t, fakevault.LoginHandler(t, "ssapresu", "up-token"))

	p, err := NewUserPassProvider(client, "alice", "hunter2",
		userpass.WithMountPath("ssapresu"))
	require.NoError(t, err)

	creds, err := p.GetCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "up-token", creds.Token)
}

func TestUserPassProviderLoginFailure(t *testing.T) {
	ctx := t.Context()

	client := fakevault.FakeVault(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":["invalid username or password"]}`))
	}))

	p, err := NewUserPassProvider(client, "alice", "wrong")
	require.NoError(t, err)

	_, err = p.GetCredentials(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCredentialsNotFound)
}

func TestAppRoleProvider(t *testing.T) {
	ctx := t.Context()

	client := fakevault.FakeVault(t, fakevault.LoginHandler(t, "approle", "ar-token"))

	_, err := NewAppRoleProvider(client, "", "")
	require.Error(t, err)

	_, err = NewAppRoleProvider(client, "role", "")
	require.Error(t, err)

	p, err := NewAppRoleProvider(client, "role", "secret")
	require.NoError(t, err)

	creds, err := p.GetCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ar-token", creds.Token)
}

func TestLoginResponseWithoutToken(t *testing.T) {
	ctx := t.Context()

	client := fakevault.FakeVault(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"data": map[string]any{}})
	}))

	p, err := NewUserPassProvider(client, "alice", "hunter2")
	require.NoError(t, err)

	_, err = p.GetCredentials(ctx)
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}
