package vaultclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"
)

// ErrSecretNotFound is returned when the requested path holds no secret.
var ErrSecretNotFound = errors.New("secret not found")

// ServerError is a non-2xx response from the Vault server, carrying the
// error strings from the response body.
type ServerError struct {
	Errors     []string
	StatusCode int
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("vault server responded with status %d", e.StatusCode)
	if len(e.Errors) > 0 {
		msg += ": " + strings.Join(e.Errors, ", ")
	}

	return msg
}

// serverError converts a Vault API error to a ServerError, preventing Vault
// API types from leaking. Transport-level errors pass through unchanged.
func serverError(err error) error {
	rerr := &api.ResponseError{}
	if errors.As(err, &rerr) {
		return &ServerError{StatusCode: rerr.StatusCode, Errors: rerr.Errors}
	}

	return err
}
