package identity

import (
	"context"
	"errors"
)

// ErrAuthentication is returned whenever the current call cannot prove that
// it is authorized by the claimed address.
var ErrAuthentication = errors.New("caller identity could not be authenticated")

// Authenticator proves that the current call is authorized by addr. Every
// state-mutating marketplace operation consults it before touching the
// ledger. The credential being checked travels in the context, placed there
// by the transport layer.
type Authenticator interface {
	RequireIdentity(ctx context.Context, addr string) error
}

// Credential carries whatever proof material the transport extracted from
// the request. Which field matters depends on the configured authenticator.
type Credential struct {
	Token string // bearer token (JWT mode)
	Key   string // shared secret (API-key mode)
}

type credentialCtxKey struct{}

func WithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, credentialCtxKey{}, cred)
}

func credentialFrom(ctx context.Context) (Credential, bool) {
	cred, ok := ctx.Value(credentialCtxKey{}).(Credential)
	return cred, ok
}
