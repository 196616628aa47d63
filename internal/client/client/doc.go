// Package client talks to the NutriScan server's HTTP API.
//
// Client is the transport contract used by the CLI services; HTTPClient is
// its net/http implementation. Failed calls return *APIError, which matches
// the sentinels below and the internal/common ones with errors.Is:
//
//	_, err := c.CreateProduct(ctx, owner, token, "3017620422003", attrs)
//	if errors.Is(err, common.ErrorAlreadyExists) { ... }
package client
