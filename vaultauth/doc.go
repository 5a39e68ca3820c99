// Package vaultauth provides credential providers for authenticating to a
// Vault secrets service. A provider is any source capable of producing a
// client token: an environment variable, a process property, a static
// value, the conventional ~/.vault-token file, or a remote login against
// one of Vault's auth methods (userpass, approle, github).
//
// Providers compose with [NewChain], which tries each source in order and
// remembers the first one to succeed.
//
// See also these auth methods provided with the Vault API, which the login
// providers here build on:
//   - [github.com/hashicorp/vault/api/auth/approle]
//   - [github.com/hashicorp/vault/api/auth/userpass]
package vaultauth
