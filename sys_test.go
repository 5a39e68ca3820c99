package vaultclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peakview/go-vaultclient/vaultauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sysClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(
		WithAddress(srv.URL),
		WithCredentialsProvider(vaultauth.NewStaticProvider("tok")),
	)
	require.NoError(t, err)

	return c
}

func TestInitialized(t *testing.T) {
	ctx := t.Context()

	c := sysClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/sys/init", r.URL.Path)

		// init status is unauthenticated
		assert.Empty(t, r.Header.Get("X-Vault-Token"))

		_, _ = w.Write([]byte(`{"initialized": true}`))
	}))

	initialized, err := c.Initialized(ctx)
	require.NoError(t, err)
	assert.True(t, initialized)
}

func TestInit(t *testing.T) {
	ctx := t.Context()

	c := sysClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/sys/init", r.URL.Path)

		body := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, float64(5), body["secret_shares"])
		assert.Equal(t, float64(3), body["secret_threshold"])

		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{
			"keys":       []string{"k1", "k2", "k3", "k4", "k5"},
			"root_token": "root-tok",
		})
	}))

	resp, err := c.Init(ctx, &InitRequest{SecretShares: 5, SecretThreshold: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Keys, 5)
	assert.Equal(t, "root-tok", resp.RootToken)
}

func TestSealStatusAndUnseal(t *testing.T) {
	ctx := t.Context()

	sealed := true

	c := sysClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enc := json.NewEncoder(w)

		switch r.URL.Path {
		case "/v1/sys/seal-status":
			_ = enc.Encode(map[string]any{"sealed": sealed, "t": 3, "n": 5, "progress": 0})
		case "/v1/sys/unseal":
			body := map[string]any{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.NotEmpty(t, body["key"])

			sealed = false
			_ = enc.Encode(map[string]any{"sealed": sealed, "t": 3, "n": 5, "progress": 0})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	status, err := c.SealStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Sealed)
	assert.Equal(t, 3, status.T)
	assert.Equal(t, 5, status.N)

	status, err = c.Unseal(ctx, "unseal-key-1")
	require.NoError(t, err)
	assert.False(t, status.Sealed)
}

func TestHealth(t *testing.T) {
	ctx := t.Context()

	c := sysClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sys/health", r.URL.Path)

		// degraded states are reported with the override status so they
		// don't surface as errors
		assert.Equal(t, "299", r.URL.Query().Get("sealedcode"))

		w.WriteHeader(299)

		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{
			"initialized": true,
			"sealed":      true,
			"standby":     false,
			"version":     "1.15.0",
		})
	}))

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.True(t, health.Initialized)
	assert.True(t, health.Sealed)
	assert.Equal(t, "1.15.0", health.Version)
}

func TestPolicies(t *testing.T) {
	ctx := t.Context()

	rules := map[string]string{
		"default": `path "secret/*" { capabilities = ["read"] }`,
	}

	c := sysClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "tok" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))

			return
		}

		enc := json.NewEncoder(w)

		switch {
		case r.URL.Path == "/v1/sys/policy" && r.Method == http.MethodGet:
			names := make([]string, 0, len(rules))
			for name := range rules {
				names = append(names, name)
			}

			_ = enc.Encode(map[string]any{"policies": names})
		case r.Method == http.MethodGet:
			name := r.URL.Path[len("/v1/sys/policy/"):]

			p, ok := rules[name]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"errors":[]}`))

				return
			}

			_ = enc.Encode(map[string]any{"name": name, "rules": p})
		case r.Method == http.MethodPut:
			name := r.URL.Path[len("/v1/sys/policy/"):]

			body := map[string]string{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			rules[name] = body["rules"]

			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			delete(rules, r.URL.Path[len("/v1/sys/policy/"):])

			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	names, err := c.ListPolicies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)

	policy, err := c.ReadPolicy(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "default", policy.Name)
	assert.Contains(t, policy.Rules, `capabilities = ["read"]`)

	err = c.WritePolicy(ctx, "app", `path "secret/app/*" { capabilities = ["read", "list"] }`)
	require.NoError(t, err)

	policy, err = c.ReadPolicy(ctx, "app")
	require.NoError(t, err)
	assert.Contains(t, policy.Rules, "secret/app/*")

	err = c.DeletePolicy(ctx, "app")
	require.NoError(t, err)

	_, err = c.ReadPolicy(ctx, "app")
	require.Error(t, err)
}

func TestLookupSelf(t *testing.T) {
	ctx := t.Context()

	c := sysClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/token/lookup-self", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("X-Vault-Token"))

		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{
			"data": map[string]any{"display_name": "token", "ttl": 3600},
		})
	}))

	secret, err := c.LookupSelf(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token", secret.Data["display_name"])
}
