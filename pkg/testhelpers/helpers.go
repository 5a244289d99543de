package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"iotmarket/pkg/identity"
)

// ManualClock is a hand-advanced ledger clock for deterministic timestamps.
type ManualClock struct {
	Time uint64
}

func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{Time: start}
}

func (c *ManualClock) Now() uint64 {
	return c.Time
}

func (c *ManualClock) Advance(seconds uint64) {
	c.Time += seconds
}

// StaticAuthenticator accepts a fixed identity set. An empty set accepts
// every identity.
type StaticAuthenticator struct {
	Allowed map[string]bool
}

// AllowAll authenticates any claimed identity.
func AllowAll() *StaticAuthenticator {
	return &StaticAuthenticator{}
}

// Allow authenticates exactly the given identities.
func Allow(addrs ...string) *StaticAuthenticator {
	allowed := make(map[string]bool, len(addrs))
	for _, a := range addrs {
		allowed[a] = true
	}
	return &StaticAuthenticator{Allowed: allowed}
}

func (a *StaticAuthenticator) RequireIdentity(_ context.Context, addr string) error {
	if a.Allowed == nil || a.Allowed[addr] {
		return nil
	}
	return fmt.Errorf("%w: identity %q rejected", identity.ErrAuthentication, addr)
}

// SetupTestPool connects to the integration-test database, skipping the test
// when DATABASE_URL_FOR_TEST is not set.
func SetupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping ledger integration tests")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}
