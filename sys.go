package vaultclient

import (
	"context"
	"fmt"
	"net/http"
)

// Initialized reports whether the Vault has been initialized. This is an
// unauthenticated call.
func (c *Client) Initialized(ctx context.Context) (bool, error) {
	ctx, span := c.startSpan(ctx, "vault.sys.init-status")
	defer span.End()

	out := initStatusResponse{}

	err := c.doRaw(ctx, http.MethodGet, "/v1/sys/init", nil, &out)
	if err != nil {
		return false, recordError(span, fmt.Errorf("init status check failed: %w", err))
	}

	return out.Initialized, nil
}

// Init initializes a new Vault, returning the unseal keys and the initial
// root token. This is an unauthenticated call, and only succeeds once.
func (c *Client) Init(ctx context.Context, req *InitRequest) (*InitResponse, error) {
	ctx, span := c.startSpan(ctx, "vault.sys.init")
	defer span.End()

	out := InitResponse{}

	err := c.doRaw(ctx, http.MethodPut, "/v1/sys/init", req, &out)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("vault init failed: %w", err))
	}

	return &out, nil
}

// SealStatus returns the seal state of the Vault. This is an
// unauthenticated call.
func (c *Client) SealStatus(ctx context.Context) (*SealStatusResponse, error) {
	ctx, span := c.startSpan(ctx, "vault.sys.seal-status")
	defer span.End()

	out := SealStatusResponse{}

	err := c.doRaw(ctx, http.MethodGet, "/v1/sys/seal-status", nil, &out)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("seal status check failed: %w", err))
	}

	return &out, nil
}

// Unseal submits a single unseal key, returning the resulting seal state.
// This is an unauthenticated call; unsealing usually takes several calls
// with different key shares.
func (c *Client) Unseal(ctx context.Context, key string) (*SealStatusResponse, error) {
	ctx, span := c.startSpan(ctx, "vault.sys.unseal")
	defer span.End()

	out := SealStatusResponse{}

	err := c.doRaw(ctx, http.MethodPut, "/v1/sys/unseal",
		map[string]any{"key": key}, &out)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("vault unseal failed: %w", err))
	}

	return &out, nil
}

// Health returns the health of the Vault server. This is an unauthenticated
// call, and succeeds even for a sealed, uninitialized, or standby server -
// check the response flags.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	ctx, span := c.startSpan(ctx, "vault.sys.health")
	defer span.End()

	//nolint:staticcheck
	req := c.api.NewRequest(http.MethodGet, "/v1/sys/health")

	// ask the server to report all the "degraded" states with a 2xx status
	// instead of its usual 429/501/503, so only real failures error
	for _, p := range []string{
		"uninitcode", "sealedcode", "standbycode",
		"drsecondarycode", "performancestandbycode",
	} {
		req.Params.Add(p, "299")
	}

	//nolint:staticcheck
	resp, err := c.api.RawRequestWithContext(ctx, req)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("health check failed: %w", serverError(err)))
	}
	defer resp.Body.Close()

	out := HealthResponse{}

	if err := resp.DecodeJSON(&out); err != nil {
		return nil, recordError(span, fmt.Errorf("health check failed: %w", err))
	}

	return &out, nil
}

// ListPolicies lists the names of the configured access policies.
func (c *Client) ListPolicies(ctx context.Context) ([]string, error) {
	ctx, span := c.startSpan(ctx, "vault.sys.policies")
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return nil, recordError(span, err)
	}

	out := listPoliciesResponse{}

	err := c.doRaw(ctx, http.MethodGet, "/v1/sys/policy", nil, &out)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list policies failed: %w", err))
	}

	return out.Policies, nil
}

// ReadPolicy returns the named policy and its rules.
func (c *Client) ReadPolicy(ctx context.Context, name string) (*Policy, error) {
	ctx, span := c.startSpan(ctx, "vault.sys.policy.read", policyAttr(name))
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return nil, recordError(span, err)
	}

	out := Policy{}

	err := c.doRaw(ctx, http.MethodGet, "/v1/sys/policy/"+name, nil, &out)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("read policy %s failed: %w", name, err))
	}

	if out.Name == "" {
		out.Name = name
	}

	return &out, nil
}

// WritePolicy creates or updates the named policy with the given rules, in
// Vault's HCL policy syntax.
func (c *Client) WritePolicy(ctx context.Context, name, rules string) error {
	ctx, span := c.startSpan(ctx, "vault.sys.policy.write", policyAttr(name))
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return recordError(span, err)
	}

	err := c.doRaw(ctx, http.MethodPut, "/v1/sys/policy/"+name,
		map[string]any{"rules": rules}, nil)
	if err != nil {
		return recordError(span, fmt.Errorf("write policy %s failed: %w", name, err))
	}

	return nil
}

// DeletePolicy deletes the named policy.
func (c *Client) DeletePolicy(ctx context.Context, name string) error {
	ctx, span := c.startSpan(ctx, "vault.sys.policy.delete", policyAttr(name))
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return recordError(span, err)
	}

	err := c.doRaw(ctx, http.MethodDelete, "/v1/sys/policy/"+name, nil, nil)
	if err != nil {
		return recordError(span, fmt.Errorf("delete policy %s failed: %w", name, err))
	}

	return nil
}

// LookupSelf returns the metadata of the token currently in use.
func (c *Client) LookupSelf(ctx context.Context) (*Secret, error) {
	ctx, span := c.startSpan(ctx, "vault.token.lookup-self")
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return nil, recordError(span, err)
	}

	s, err := c.api.Logical().ReadWithContext(ctx, "auth/token/lookup-self")
	if err != nil {
		return nil, recordError(span, fmt.Errorf("token lookup failed: %w", serverError(err)))
	}

	if s == nil {
		return nil, recordError(span, fmt.Errorf("auth/token/lookup-self: %w", ErrSecretNotFound))
	}

	return secretFromAPI(s), nil
}

// doRaw issues a request outside the paths the Logical API covers, decoding
// the JSON response into out when out is non-nil.
func (c *Client) doRaw(ctx context.Context, method, path string, body, out any) error {
	//nolint:staticcheck
	req := c.api.NewRequest(method, path)

	if body != nil {
		if err := req.SetJSONBody(body); err != nil {
			return err
		}
	}

	//nolint:staticcheck
	resp, err := c.api.RawRequestWithContext(ctx, req)
	if err != nil {
		return serverError(err)
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}

	return resp.DecodeJSON(out)
}
