// Package fakevault provides a fake Vault server for use in tests.
package fakevault

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hashicorp/vault/api"
)

type fakeSecret struct {
	Value string   `json:"value,omitempty"`
	Keys  []string `json:"keys,omitempty"`
}

func secretHandler(files map[string]fakeSecret) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the API client lists with a literal LIST method, but a GET with
		// list=true is equivalent
		if r.Method == "LIST" ||
			(r.Method == http.MethodGet && r.URL.Query().Get("list") == "true") {
			r.Method = "LIST"

			if !strings.HasSuffix(r.URL.Path, "/") {
				r.URL.Path += "/"
			}
		}

		data, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))

			return
		}

		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"data": data})
	})
}

// Server returns a Vault API client pointed at a fake server hosting a small
// fixed tree of KV secrets.
func Server(t *testing.T) *api.Client {
	files := map[string]fakeSecret{
		"/v1/secret/":        {Keys: []string{"foo", "bar", "sub/"}},
		"/v1/secret/foo":     {Value: "foo"},
		"/v1/secret/bar":     {Value: "bar"},
		"/v1/secret/sub/":    {Keys: []string{"baz"}},
		"/v1/secret/sub/baz": {Value: "baz"},
	}

	return FakeVault(t, secretHandler(files))
}

// FakeVault starts an httptest server with the given handler and returns a
// Vault API client that proxies all requests to it. The server is torn down
// when the test finishes.
func FakeVault(t *testing.T, handler http.Handler) *api.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tr := &http.Transport{
		Proxy: func(_ *http.Request) (*url.URL, error) {
			return url.Parse(srv.URL)
		},
	}
	httpClient := &http.Client{Transport: tr}
	config := &api.Config{Address: srv.URL, HttpClient: httpClient}

	c, _ := api.NewClient(config)

	return c
}

// LoginHandler returns a handler that accepts any login to the given auth
// mount and responds with the given client token.
func LoginHandler(t *testing.T, mount, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/"+mount+"/login" &&
			!strings.HasPrefix(r.URL.Path, "/v1/auth/"+mount+"/login/") {
			t.Logf("unexpected login path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)

			return
		}

		out := map[string]any{
			"auth": map[string]any{
				"client_token":   token,
				"policies":       []string{"default"},
				"lease_duration": 3600,
				"renewable":      true,
			},
		}

		enc := json.NewEncoder(w)
		_ = enc.Encode(out)
	})
}
