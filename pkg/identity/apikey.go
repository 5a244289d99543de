package identity

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyAuthenticator proves identities with per-address shared secrets.
// Secrets are bcrypt-hashed at construction and never kept in clear.
type APIKeyAuthenticator struct {
	hashes map[string][]byte // addr -> bcrypt hash
}

// NewAPIKeyAuthenticator hashes the given addr->secret pairs.
func NewAPIKeyAuthenticator(secrets map[string]string) (*APIKeyAuthenticator, error) {
	hashes := make(map[string][]byte, len(secrets))
	for addr, secret := range secrets {
		h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash key for %s: %w", addr, err)
		}
		hashes[addr] = h
	}
	return &APIKeyAuthenticator{hashes: hashes}, nil
}

// ParseAuthKeys parses the AUTH_KEYS format: comma-separated addr:secret
// pairs.
func ParseAuthKeys(raw string) (map[string]string, error) {
	secrets := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		addr, secret, ok := strings.Cut(pair, ":")
		if !ok || addr == "" || secret == "" {
			return nil, fmt.Errorf("malformed auth key entry %q", pair)
		}
		secrets[addr] = secret
	}
	return secrets, nil
}

func (a *APIKeyAuthenticator) RequireIdentity(ctx context.Context, addr string) error {
	cred, ok := credentialFrom(ctx)
	if !ok || cred.Key == "" {
		return fmt.Errorf("%w: no identity key presented", ErrAuthentication)
	}

	hash, ok := a.hashes[addr]
	if !ok {
		return fmt.Errorf("%w: unknown identity %q", ErrAuthentication, addr)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(cred.Key)); err != nil {
		return fmt.Errorf("%w: key mismatch for %q", ErrAuthentication, addr)
	}
	return nil
}
