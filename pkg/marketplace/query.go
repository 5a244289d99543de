package marketplace

import (
	"context"

	"iotmarket/pkg/ledger"
)

// The query layer walks id space 1..counter and filters. Linear, but the id
// space is dense so every probe hits.

func (e *engine) GetAssetsByOwner(ctx context.Context, owner string) ([]Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.scanAssets(ctx, func(a Asset) bool {
		return a.Owner == owner
	})
}

func (e *engine) GetAvailableAssetsByType(ctx context.Context, assetType string) ([]Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.scanAssets(ctx, func(a Asset) bool {
		return a.IsAvailable && a.AssetType == assetType
	})
}

// GetLeasesByLessee returns the lessee's active leases in ascending id order.
func (e *engine) GetLeasesByLessee(ctx context.Context, lessee string) ([]Lease, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	counter, err := e.loadCounter(ctx, ledger.KeyLeaseCounter)
	if err != nil {
		return nil, err
	}

	leases := make([]Lease, 0)
	for id := uint64(1); id <= counter; id++ {
		lease, err := e.loadLease(ctx, id)
		if err != nil {
			return nil, err
		}
		if lease.Lessee == lessee && lease.IsActive {
			leases = append(leases, lease)
		}
	}
	return leases, nil
}

func (e *engine) GetAsset(ctx context.Context, assetID uint64) (Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadAsset(ctx, assetID)
}

func (e *engine) GetLease(ctx context.Context, leaseID uint64) (Lease, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLease(ctx, leaseID)
}

func (e *engine) GetReview(ctx context.Context, reviewID uint64) (Review, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadReview(ctx, reviewID)
}

func (e *engine) GetAssetStats(ctx context.Context) (AssetStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadStats(ctx)
}

func (e *engine) scanAssets(ctx context.Context, keep func(Asset) bool) ([]Asset, error) {
	counter, err := e.loadCounter(ctx, ledger.KeyAssetCounter)
	if err != nil {
		return nil, err
	}

	assets := make([]Asset, 0)
	for id := uint64(1); id <= counter; id++ {
		asset, err := e.loadAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		if keep(asset) {
			assets = append(assets, asset)
		}
	}
	return assets, nil
}
