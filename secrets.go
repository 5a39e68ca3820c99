package vaultclient

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"
)

// ReadSecret reads the secret at the given path, e.g. "secret/app/db".
// Returns [ErrSecretNotFound] if the path holds nothing.
func (c *Client) ReadSecret(ctx context.Context, path string) (*Secret, error) {
	ctx, span := c.startSpan(ctx, "vault.read", pathAttr(path))
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return nil, recordError(span, err)
	}

	s, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("read %s failed: %w", path, serverError(err)))
	}

	if s == nil {
		return nil, recordError(span, fmt.Errorf("%s: %w", path, ErrSecretNotFound))
	}

	return secretFromAPI(s), nil
}

// WriteSecret writes data to the given path, returning the server's
// response secret when there is one (many writes return no content).
func (c *Client) WriteSecret(ctx context.Context, path string, data map[string]any) (*Secret, error) {
	ctx, span := c.startSpan(ctx, "vault.write", pathAttr(path))
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return nil, recordError(span, err)
	}

	s, err := c.api.Logical().WriteWithContext(ctx, path, data)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("write %s failed: %w", path, serverError(err)))
	}

	if s == nil {
		return nil, nil
	}

	return secretFromAPI(s), nil
}

// ListSecrets lists the keys directly under the given path. Keys ending in
// "/" name sub-paths. Returns [ErrSecretNotFound] if the path holds
// nothing.
func (c *Client) ListSecrets(ctx context.Context, path string) ([]string, error) {
	ctx, span := c.startSpan(ctx, "vault.list", pathAttr(path))
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return nil, recordError(span, err)
	}

	s, err := c.api.Logical().ListWithContext(ctx, path)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list %s failed: %w", path, serverError(err)))
	}

	if s == nil {
		return nil, recordError(span, fmt.Errorf("%s: %w", path, ErrSecretNotFound))
	}

	keys, err := listKeys(s)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list %s failed: %w", path, err))
	}

	span.SetAttributes(keysAttr(len(keys)))

	return keys, nil
}

// DeleteSecret deletes the secret at the given path.
func (c *Client) DeleteSecret(ctx context.Context, path string) error {
	ctx, span := c.startSpan(ctx, "vault.delete", pathAttr(path))
	defer span.End()

	if err := c.ensureToken(ctx); err != nil {
		return recordError(span, err)
	}

	_, err := c.api.Logical().DeleteWithContext(ctx, path)
	if err != nil {
		return recordError(span, fmt.Errorf("delete %s failed: %w", path, serverError(err)))
	}

	return nil
}

// secretFromAPI maps an API secret to the local model, preventing Vault API
// types from leaking.
func secretFromAPI(s *api.Secret) *Secret {
	return &Secret{
		RequestID:     s.RequestID,
		LeaseID:       s.LeaseID,
		LeaseDuration: s.LeaseDuration,
		Renewable:     s.Renewable,
		Data:          s.Data,
		Warnings:      s.Warnings,
	}
}

func listKeys(s *api.Secret) ([]string, error) {
	keys, ok := s.Data["keys"]
	if !ok {
		return nil, fmt.Errorf("keys missing from vault LIST response")
	}

	k, ok := keys.([]interface{})
	if !ok {
		return nil, fmt.Errorf("keys returned in unexpected format from vault LIST response: %#v", keys)
	}

	dirkeys := make([]string, len(k))

	for i := 0; i < len(k); i++ {
		if s, ok := k[i].(string); ok {
			dirkeys[i] = s
		}
	}

	return dirkeys, nil
}
