package marketplace

import (
	"context"
	"encoding/json"
	"fmt"

	"iotmarket/pkg/ledger"
)

// batch accumulates the writes of one operation; nothing reaches the store
// until every precondition has passed and the batch commits as a unit.
type batch struct {
	writes []ledger.Write
}

func (b *batch) stage(key ledger.Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	b.writes = append(b.writes, ledger.Write{Key: key, Value: data})
	return nil
}

func (e *engine) loadAsset(ctx context.Context, id uint64) (Asset, error) {
	var a Asset
	if err := e.load(ctx, ledger.AssetKey(id), &a); err != nil {
		if err == errKeyMissing {
			return Asset{}, ErrAssetNotFound
		}
		return Asset{}, err
	}
	return a, nil
}

func (e *engine) loadLease(ctx context.Context, id uint64) (Lease, error) {
	var l Lease
	if err := e.load(ctx, ledger.LeaseKey(id), &l); err != nil {
		if err == errKeyMissing {
			return Lease{}, ErrLeaseNotFound
		}
		return Lease{}, err
	}
	return l, nil
}

func (e *engine) loadReview(ctx context.Context, id uint64) (Review, error) {
	var r Review
	if err := e.load(ctx, ledger.ReviewKey(id), &r); err != nil {
		if err == errKeyMissing {
			return Review{}, ErrReviewNotFound
		}
		return Review{}, err
	}
	return r, nil
}

// loadStats returns a zeroed aggregate when the singleton has never been
// written, mirroring the before-initialize behavior of the ledger.
func (e *engine) loadStats(ctx context.Context) (AssetStats, error) {
	var s AssetStats
	if err := e.load(ctx, ledger.KeyStats, &s); err != nil {
		if err == errKeyMissing {
			return AssetStats{}, nil
		}
		return AssetStats{}, err
	}
	return s, nil
}

func (e *engine) loadCounter(ctx context.Context, key ledger.Key) (uint64, error) {
	var n uint64
	if err := e.load(ctx, key, &n); err != nil {
		if err == errKeyMissing {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

var errKeyMissing = fmt.Errorf("ledger key missing")

func (e *engine) load(ctx context.Context, key ledger.Key, v any) error {
	data, ok, err := e.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return errKeyMissing
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
