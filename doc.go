// Package vaultclient is a client library for a Vault secrets service. It
// resolves the service address from the environment or process properties,
// acquires a client token through a chain of credential providers (see the
// vaultauth package), and wraps the service's HTTP API: reading and writing
// secrets, initializing and unsealing the vault, health checks, and policy
// management.
//
// A client with all defaults resolves the address from $VAULT_ADDR and the
// token from whatever the environment configures:
//
//	client, err := vaultclient.New()
//	if err != nil {
//		return err
//	}
//
//	secret, err := client.ReadSecret(ctx, "secret/app/db")
//
// Both can be pinned down explicitly:
//
//	client, err := vaultclient.New(
//		vaultclient.WithAddress("https://vault.example.com:8200"),
//		vaultclient.WithCredentialsProvider(vaultauth.NewStaticProvider(token)),
//	)
package vaultclient
