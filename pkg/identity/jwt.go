package identity

import (
	"context"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// JWTAuthenticator proves identities with HS256 bearer tokens whose subject
// is the address being claimed.
type JWTAuthenticator struct {
	secret []byte
}

func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// IssueToken mints a token proving addr for the given lifetime.
func (a *JWTAuthenticator) IssueToken(addr string, ttl time.Duration) (string, error) {
	c := claims{
		Sub: addr,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(a.secret)
}

func (a *JWTAuthenticator) RequireIdentity(ctx context.Context, addr string) error {
	cred, ok := credentialFrom(ctx)
	if !ok || cred.Token == "" {
		return fmt.Errorf("%w: no bearer token presented", ErrAuthentication)
	}

	t, err := jwt.ParseWithClaims(cred.Token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	c, ok := t.Claims.(*claims)
	if !ok || !t.Valid {
		return fmt.Errorf("%w: invalid token", ErrAuthentication)
	}
	if c.Sub != addr {
		return fmt.Errorf("%w: token subject %q does not match claimed identity %q", ErrAuthentication, c.Sub, addr)
	}
	return nil
}
