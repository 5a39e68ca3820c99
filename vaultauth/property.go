package vaultauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/peakview/go-vaultclient/internal/props"
)

// TokenProperty is the process property consulted by the property
// credential provider.
const TokenProperty = "vault.token"

// NewPropertyProvider returns a provider that resolves the token from the
// vault.token process property. Properties are set programmatically, via
// [github.com/peakview/go-vaultclient.SetProperty].
func NewPropertyProvider() CredentialsProvider {
	return &propertyProvider{}
}

type propertyProvider struct{}

func (p *propertyProvider) GetCredentials(_ context.Context) (*Credential, error) {
	token := props.Get(TokenProperty)
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("property %q not set: %w", TokenProperty, ErrCredentialsNotFound)
	}

	return &Credential{Token: token}, nil
}
