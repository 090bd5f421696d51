package auth

import (
	"context"

	"github.com/evcraddock/gardet/internal/header"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	apiKeyKey
)

// WithIdentity returns a context carrying the signed-in identity.
func WithIdentity(ctx context.Context, id header.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity stored by the auth middleware, or nil
// for anonymous requests.
func IdentityFrom(ctx context.Context) *header.Identity {
	id, ok := ctx.Value(identityKey).(header.Identity)
	if !ok {
		return nil
	}
	return &id
}

func withAPIKey(ctx context.Context, rawKey string) context.Context {
	return context.WithValue(ctx, apiKeyKey, rawKey)
}

// APIKeyFrom returns the raw API key the request authenticated with.
func APIKeyFrom(ctx context.Context) (string, bool) {
	k, ok := ctx.Value(apiKeyKey).(string)
	return k, ok && k != ""
}
