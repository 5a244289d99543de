package marketplace

import (
	"context"
	"log"
	"sync"

	"iotmarket/pkg/clock"
	"iotmarket/pkg/identity"
	"iotmarket/pkg/ledger"
)

// Ledger retention windows in seconds; renewed on every committed operation.
const (
	initializeRetention = 10000
	operationRetention  = 5000
)

type engine struct {
	mu    sync.Mutex
	store ledger.Store
	auth  identity.Authenticator
	clock clock.Clock
	sinks []EventSink
}

type Option func(*engine)

// WithEventSink registers a sink that receives an event after every
// committed mutation. May be given more than once.
func WithEventSink(sink EventSink) Option {
	return func(e *engine) {
		e.sinks = append(e.sinks, sink)
	}
}

// NewMarketplaceService builds the leasing engine on top of the injected
// collaborators. The engine serializes operations internally: each call runs
// read-validate-write-commit to completion before the next begins.
func NewMarketplaceService(store ledger.Store, auth identity.Authenticator, clk clock.Clock, opts ...Option) MarketplaceService {
	e := &engine{store: store, auth: auth, clock: clk}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize writes zeroed stats and counters. It is deliberately not
// guarded: calling it again resets the marketplace.
func (e *engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var b batch
	if err := b.stage(ledger.KeyStats, AssetStats{}); err != nil {
		return err
	}
	for _, key := range []ledger.Key{ledger.KeyAssetCounter, ledger.KeyLeaseCounter, ledger.KeyReviewCounter} {
		if err := b.stage(key, uint64(0)); err != nil {
			return err
		}
	}
	if err := e.store.Apply(ctx, b.writes); err != nil {
		return err
	}
	if err := e.store.ExtendLifetime(ctx, initializeRetention, initializeRetention); err != nil {
		return err
	}

	log.Println("marketplace initialized")
	e.publish(Event{Type: EventMarketplaceInitialized, Time: e.clock.Now()})
	return nil
}

func (e *engine) RegisterAsset(ctx context.Context, owner string, input RegisterAssetInput) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, owner); err != nil {
		return 0, err
	}
	if !input.PaymentModel.Valid() {
		return 0, ErrInvalidPaymentModel
	}

	counter, err := e.loadCounter(ctx, ledger.KeyAssetCounter)
	if err != nil {
		return 0, err
	}
	counter++

	asset := Asset{
		ID:               counter,
		Owner:            owner,
		Title:            input.Title,
		Description:      input.Description,
		AssetType:        input.AssetType,
		Location:         input.Location,
		Price:            input.Price,
		PaymentModel:     input.PaymentModel,
		IsAvailable:      true,
		CreatedTime:      e.clock.Now(),
		QualityGuarantee: input.QualityGuarantee,
		Rating:           0,
	}

	stats, err := e.loadStats(ctx)
	if err != nil {
		return 0, err
	}
	stats.Registered++
	stats.Available++

	var b batch
	if err := b.stage(ledger.AssetKey(counter), asset); err != nil {
		return 0, err
	}
	if err := b.stage(ledger.KeyAssetCounter, counter); err != nil {
		return 0, err
	}
	if err := b.stage(ledger.KeyStats, stats); err != nil {
		return 0, err
	}
	if err := e.commit(ctx, b); err != nil {
		return 0, err
	}

	e.publish(Event{
		Type:    EventAssetRegistered,
		Actor:   owner,
		AssetID: counter,
		Parties: []string{owner},
		Time:    asset.CreatedTime,
	})
	return counter, nil
}

func (e *engine) UpdateAsset(ctx context.Context, owner string, assetID uint64, input UpdateAssetInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, owner); err != nil {
		return err
	}

	asset, err := e.loadAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.Owner != owner {
		return ErrNotAuthorized
	}

	var b batch
	if asset.IsAvailable != input.IsAvailable {
		stats, err := e.loadStats(ctx)
		if err != nil {
			return err
		}
		if input.IsAvailable {
			stats.Available++
		} else {
			stats.Available--
		}
		if err := b.stage(ledger.KeyStats, stats); err != nil {
			return err
		}
	}

	asset.Title = input.Title
	asset.Description = input.Description
	asset.Price = input.Price
	asset.IsAvailable = input.IsAvailable
	asset.QualityGuarantee = input.QualityGuarantee

	if err := b.stage(ledger.AssetKey(assetID), asset); err != nil {
		return err
	}
	if err := e.commit(ctx, b); err != nil {
		return err
	}

	e.publish(Event{
		Type:    EventAssetUpdated,
		Actor:   owner,
		AssetID: assetID,
		Parties: []string{owner},
		Time:    e.clock.Now(),
	})
	return nil
}

func (e *engine) CreateLease(ctx context.Context, lessee string, assetID, durationSeconds uint64, accessKey string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, lessee); err != nil {
		return 0, err
	}

	asset, err := e.loadAsset(ctx, assetID)
	if err != nil {
		return 0, err
	}
	if !asset.IsAvailable {
		return 0, ErrAssetUnavailable
	}

	now := e.clock.Now()
	totalCost := leaseCost(asset.Price, asset.PaymentModel, durationSeconds)

	counter, err := e.loadCounter(ctx, ledger.KeyLeaseCounter)
	if err != nil {
		return 0, err
	}
	counter++

	lease := Lease{
		ID:        counter,
		AssetID:   assetID,
		Lessor:    asset.Owner,
		Lessee:    lessee,
		StartTime: now,
		EndTime:   now + durationSeconds,
		TotalCost: totalCost,
		IsActive:  true,
		IsPaid:    false,
		AccessKey: accessKey,
	}

	asset.IsAvailable = false

	stats, err := e.loadStats(ctx)
	if err != nil {
		return 0, err
	}
	stats.Available--
	stats.Leased++

	var b batch
	if err := b.stage(ledger.LeaseKey(counter), lease); err != nil {
		return 0, err
	}
	if err := b.stage(ledger.KeyLeaseCounter, counter); err != nil {
		return 0, err
	}
	if err := b.stage(ledger.AssetKey(assetID), asset); err != nil {
		return 0, err
	}
	if err := b.stage(ledger.KeyStats, stats); err != nil {
		return 0, err
	}
	if err := e.commit(ctx, b); err != nil {
		return 0, err
	}

	e.publish(Event{
		Type:    EventLeaseCreated,
		Actor:   lessee,
		AssetID: assetID,
		LeaseID: counter,
		Amount:  totalCost,
		Parties: []string{lease.Lessor, lessee},
		Time:    now,
	})
	return counter, nil
}

func (e *engine) ProcessPayment(ctx context.Context, payer string, leaseID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, payer); err != nil {
		return err
	}

	lease, err := e.loadLease(ctx, leaseID)
	if err != nil {
		return err
	}
	if lease.Lessee != payer {
		return ErrNotAuthorized
	}
	if !lease.IsActive {
		return ErrLeaseNotActive
	}
	if lease.IsPaid {
		return ErrLeaseAlreadyPaid
	}

	// Value transfer happens on an external payment rail; the ledger only
	// records that payment occurred.
	lease.IsPaid = true

	stats, err := e.loadStats(ctx)
	if err != nil {
		return err
	}
	stats.TotalRevenue += lease.TotalCost

	var b batch
	if err := b.stage(ledger.LeaseKey(leaseID), lease); err != nil {
		return err
	}
	if err := b.stage(ledger.KeyStats, stats); err != nil {
		return err
	}
	if err := e.commit(ctx, b); err != nil {
		return err
	}

	e.publish(Event{
		Type:    EventPaymentProcessed,
		Actor:   payer,
		AssetID: lease.AssetID,
		LeaseID: leaseID,
		Amount:  lease.TotalCost,
		Parties: []string{lease.Lessor, lease.Lessee},
		Time:    e.clock.Now(),
	})
	return nil
}

func (e *engine) EndLease(ctx context.Context, caller string, leaseID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, caller); err != nil {
		return err
	}

	lease, err := e.loadLease(ctx, leaseID)
	if err != nil {
		return err
	}
	if lease.Lessor != caller && lease.Lessee != caller {
		return ErrNotAuthorized
	}
	if !lease.IsActive {
		return ErrLeaseNotActive
	}

	lease.IsActive = false

	asset, err := e.loadAsset(ctx, lease.AssetID)
	if err != nil {
		return err
	}
	asset.IsAvailable = true

	stats, err := e.loadStats(ctx)
	if err != nil {
		return err
	}
	stats.Available++
	stats.Leased--

	var b batch
	if err := b.stage(ledger.LeaseKey(leaseID), lease); err != nil {
		return err
	}
	if err := b.stage(ledger.AssetKey(lease.AssetID), asset); err != nil {
		return err
	}
	if err := b.stage(ledger.KeyStats, stats); err != nil {
		return err
	}
	if err := e.commit(ctx, b); err != nil {
		return err
	}

	e.publish(Event{
		Type:    EventLeaseEnded,
		Actor:   caller,
		AssetID: lease.AssetID,
		LeaseID: leaseID,
		Parties: []string{lease.Lessor, lease.Lessee},
		Time:    e.clock.Now(),
	})
	return nil
}

func (e *engine) SubmitReview(ctx context.Context, reviewer string, assetID, rating uint64, comment string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, reviewer); err != nil {
		return 0, err
	}
	if rating > 100 {
		return 0, ErrInvalidRating
	}

	asset, err := e.loadAsset(ctx, assetID)
	if err != nil {
		return 0, err
	}

	counter, err := e.loadCounter(ctx, ledger.KeyReviewCounter)
	if err != nil {
		return 0, err
	}
	counter++

	now := e.clock.Now()
	review := Review{
		ID:         counter,
		AssetID:    assetID,
		Reviewer:   reviewer,
		Rating:     rating,
		Comment:    comment,
		ReviewTime: now,
	}

	// The newest rating replaces the asset's rating wholesale; reviews are
	// not averaged.
	asset.Rating = rating

	var b batch
	if err := b.stage(ledger.ReviewKey(counter), review); err != nil {
		return 0, err
	}
	if err := b.stage(ledger.KeyReviewCounter, counter); err != nil {
		return 0, err
	}
	if err := b.stage(ledger.AssetKey(assetID), asset); err != nil {
		return 0, err
	}
	if err := e.commit(ctx, b); err != nil {
		return 0, err
	}

	e.publish(Event{
		Type:     EventReviewSubmitted,
		Actor:    reviewer,
		AssetID:  assetID,
		ReviewID: counter,
		Parties:  []string{asset.Owner, reviewer},
		Time:     now,
	})
	return counter, nil
}

func (e *engine) RaiseDispute(ctx context.Context, caller string, leaseID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, caller); err != nil {
		return err
	}

	lease, err := e.loadLease(ctx, leaseID)
	if err != nil {
		return err
	}
	if lease.Lessor != caller && lease.Lessee != caller {
		return ErrNotAuthorized
	}
	if !lease.IsActive {
		return ErrLeaseNotActive
	}

	lease.DisputeRaised = true

	var b batch
	if err := b.stage(ledger.LeaseKey(leaseID), lease); err != nil {
		return err
	}
	if err := e.commit(ctx, b); err != nil {
		return err
	}

	e.publish(Event{
		Type:    EventDisputeRaised,
		Actor:   caller,
		AssetID: lease.AssetID,
		LeaseID: leaseID,
		Parties: []string{lease.Lessor, lease.Lessee},
		Time:    e.clock.Now(),
	})
	return nil
}

// ResolveDispute deactivates the lease and refunds a share of its cost.
// Any authenticated identity may resolve any dispute; there is no arbiter
// role registry.
func (e *engine) ResolveDispute(ctx context.Context, admin string, leaseID, refundPercentage uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.auth.RequireIdentity(ctx, admin); err != nil {
		return err
	}
	if refundPercentage > 100 {
		return ErrInvalidRefundPercentage
	}

	lease, err := e.loadLease(ctx, leaseID)
	if err != nil {
		return err
	}
	if !lease.DisputeRaised {
		return ErrNoDisputeRaised
	}

	refund := lease.TotalCost * refundPercentage / 100

	lease.DisputeRaised = false
	lease.IsActive = false

	asset, err := e.loadAsset(ctx, lease.AssetID)
	if err != nil {
		return err
	}
	asset.IsAvailable = true

	stats, err := e.loadStats(ctx)
	if err != nil {
		return err
	}
	stats.Available++
	stats.Leased--
	stats.TotalRevenue -= refund

	var b batch
	if err := b.stage(ledger.LeaseKey(leaseID), lease); err != nil {
		return err
	}
	if err := b.stage(ledger.AssetKey(lease.AssetID), asset); err != nil {
		return err
	}
	if err := b.stage(ledger.KeyStats, stats); err != nil {
		return err
	}
	if err := e.commit(ctx, b); err != nil {
		return err
	}

	e.publish(Event{
		Type:    EventDisputeResolved,
		Actor:   admin,
		AssetID: lease.AssetID,
		LeaseID: leaseID,
		Amount:  refund,
		Parties: []string{lease.Lessor, lease.Lessee},
		Time:    e.clock.Now(),
	})
	return nil
}

// commit flushes an operation's staged writes as one unit and renews the
// ledger retention window.
func (e *engine) commit(ctx context.Context, b batch) error {
	if err := e.store.Apply(ctx, b.writes); err != nil {
		return err
	}
	return e.store.ExtendLifetime(ctx, operationRetention, operationRetention)
}

func (e *engine) publish(ev Event) {
	for _, sink := range e.sinks {
		sink.Publish(ev)
	}
}
