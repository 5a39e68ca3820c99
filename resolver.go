package vaultclient

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/peakview/go-vaultclient/internal/env"
	"github.com/peakview/go-vaultclient/internal/props"
)

const (
	// AddrEnvVar is the environment variable consulted for the Vault
	// address.
	AddrEnvVar = "VAULT_ADDR"

	// AddrProperty is the process property consulted for the Vault address
	// when the environment variable is not set to a valid URL.
	AddrProperty = "vault.addr"
)

// ErrURLNotResolved is returned when no configured source holds a valid
// Vault URL.
var ErrURLNotResolved = errors.New("failed to resolve the vault URL from the environment or process properties")

// URLResolver determines the base URL of the Vault server.
type URLResolver interface {
	// Resolve returns the Vault address, or an error wrapping
	// [ErrURLNotResolved] when no source holds a valid URL.
	Resolve() (string, error)
}

// NewDefaultURLResolver returns a resolver that checks, in order, the
// $VAULT_ADDR environment variable and the vault.addr process property,
// returning the first syntactically valid http(s) URL. There is no caching
// and no retrying - an unset or malformed address fails immediately.
func NewDefaultURLResolver() URLResolver {
	return &defaultURLResolver{}
}

type defaultURLResolver struct{}

func (r *defaultURLResolver) Resolve() (string, error) {
	if addr := env.Getenv(AddrEnvVar); validAddr(addr) {
		return addr, nil
	}

	if addr := props.Get(AddrProperty); validAddr(addr) {
		return addr, nil
	}

	return "", ErrURLNotResolved
}

// NewStaticURLResolver returns a resolver that always yields addr. The
// address is validated once, up front.
func NewStaticURLResolver(addr string) (URLResolver, error) {
	if !validAddr(addr) {
		return nil, fmt.Errorf("invalid vault address %q: %w", addr, ErrURLNotResolved)
	}

	return staticURLResolver(addr), nil
}

type staticURLResolver string

func (r staticURLResolver) Resolve() (string, error) {
	return string(r), nil
}

func validAddr(addr string) bool {
	if strings.TrimSpace(addr) == "" {
		return false
	}

	u, err := url.Parse(addr)

	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
