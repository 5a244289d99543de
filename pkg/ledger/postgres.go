package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the keyspace in a single ledger_entries table and
// tracks the retention window in ledger_retention. Batches commit inside one
// transaction.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var value []byte
	row := s.pool.QueryRow(ctx, "SELECT v FROM ledger_entries WHERE k = $1", string(key))
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("ledger get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key Key, value []byte) error {
	_, err := s.pool.Exec(ctx, upsertEntry, string(key), value)
	if err != nil {
		return fmt.Errorf("ledger set %s: %w", key, describePgErr(err))
	}
	return nil
}

func (s *PostgresStore) Apply(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ledger apply: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, w := range writes {
		if _, err := tx.Exec(ctx, upsertEntry, string(w.Key), w.Value); err != nil {
			return fmt.Errorf("ledger apply %s: %w", w.Key, describePgErr(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ledger apply: commit: %w", err)
	}
	return nil
}

// ExtendLifetime bumps the retention row so the keyspace survives at least
// extendTo more seconds. The threshold argument is accepted for interface
// compatibility; Postgres has no cheap way to ask "how long is left", so the
// window is always pushed out.
func (s *PostgresStore) ExtendLifetime(ctx context.Context, _, extendTo uint32) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO ledger_retention (id, expires_at) VALUES (1, NOW() + make_interval(secs => $1))
		 ON CONFLICT (id) DO UPDATE SET expires_at = GREATEST(ledger_retention.expires_at, EXCLUDED.expires_at)`,
		int64(extendTo))
	if err != nil {
		return fmt.Errorf("ledger extend lifetime: %w", err)
	}
	return nil
}

const upsertEntry = `INSERT INTO ledger_entries (k, v, updated_at) VALUES ($1, $2, NOW())
	ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = NOW()`

func describePgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("pg %s: %s", pgErr.Code, pgErr.Message)
	}
	return err
}
