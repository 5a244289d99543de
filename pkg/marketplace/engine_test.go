package marketplace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"iotmarket/pkg/identity"
	"iotmarket/pkg/ledger"
	"iotmarket/pkg/testhelpers"
)

const testEpoch = uint64(1700000000)

type testEnv struct {
	store   *ledger.MemoryStore
	clock   *testhelpers.ManualClock
	auth    *testhelpers.StaticAuthenticator
	service MarketplaceService
	sink    *captureSink
}

type captureSink struct {
	events []Event
}

func (s *captureSink) Publish(ev Event) {
	s.events = append(s.events, ev)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store: ledger.NewMemoryStore(),
		clock: testhelpers.NewManualClock(testEpoch),
		auth:  testhelpers.AllowAll(),
		sink:  &captureSink{},
	}
	env.service = NewMarketplaceService(env.store, env.auth, env.clock, WithEventSink(env.sink))
	require.NoError(t, env.service.Initialize(context.Background()))
	return env
}

func registerTestAsset(t *testing.T, env *testEnv, owner string, price uint64, model PaymentModel) uint64 {
	t.Helper()

	id, err := env.service.RegisterAsset(context.Background(), owner, RegisterAssetInput{
		Title:            "Soil sensor",
		Description:      "Moisture and temperature probe",
		AssetType:        "sensor",
		Location:         "Rotterdam",
		Price:            price,
		PaymentModel:     model,
		QualityGuarantee: "99% uptime",
	})
	require.NoError(t, err)
	return id
}

func requireStats(t *testing.T, env *testEnv, want AssetStats) {
	t.Helper()

	stats, err := env.service.GetAssetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, stats)
}

func TestInitialize_WritesZeroedState(t *testing.T) {
	env := newTestEnv(t)

	requireStats(t, env, AssetStats{})

	_, err := env.service.GetAsset(context.Background(), 1)
	require.ErrorIs(t, err, ErrAssetNotFound)
}

func TestInitialize_ResetsExistingState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerTestAsset(t, env, "alice", 100, PaymentHourly)
	requireStats(t, env, AssetStats{Available: 1, Registered: 1})

	// Initialize carries no re-invocation guard: counters and stats reset.
	require.NoError(t, env.service.Initialize(ctx))
	requireStats(t, env, AssetStats{})

	id := registerTestAsset(t, env, "bob", 100, PaymentHourly)
	require.Equal(t, uint64(1), id)
}

func TestRegisterAsset_AssignsSequentialIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	second := registerTestAsset(t, env, "alice", 200, PaymentDaily)

	require.Equal(t, uint64(1), first)
	require.Equal(t, uint64(2), second)
	requireStats(t, env, AssetStats{Available: 2, Registered: 2})

	asset, err := env.service.GetAsset(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "alice", asset.Owner)
	require.True(t, asset.IsAvailable)
	require.Equal(t, uint64(0), asset.Rating)
	require.Equal(t, testEpoch, asset.CreatedTime)
}

func TestRegisterAsset_AuthenticationFailureLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	env.auth.Allowed = map[string]bool{"alice": true}
	ctx := context.Background()

	_, err := env.service.RegisterAsset(ctx, "mallory", RegisterAssetInput{
		Title:        "Stolen listing",
		AssetType:    "sensor",
		PaymentModel: PaymentHourly,
	})
	require.ErrorIs(t, err, identity.ErrAuthentication)
	requireStats(t, env, AssetStats{})

	// The failed call consumed no id.
	id := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	require.Equal(t, uint64(1), id)
}

func TestRegisterAsset_RejectsUnknownPaymentModel(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.RegisterAsset(context.Background(), "alice", RegisterAssetInput{
		Title:        "Sensor",
		AssetType:    "sensor",
		PaymentModel: PaymentModel("fortnightly"),
	})
	require.ErrorIs(t, err, ErrInvalidPaymentModel)
	requireStats(t, env, AssetStats{})
}

func TestUpdateAsset_OnlyStoredOwnerMayUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	err := env.service.UpdateAsset(ctx, "bob", id, UpdateAssetInput{
		Title:       "Hijacked",
		IsAvailable: true,
	})
	require.ErrorIs(t, err, ErrNotAuthorized)

	asset, err := env.service.GetAsset(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Soil sensor", asset.Title)
}

func TestUpdateAsset_UnknownAsset(t *testing.T) {
	env := newTestEnv(t)

	err := env.service.UpdateAsset(context.Background(), "alice", 42, UpdateAssetInput{Title: "X", IsAvailable: true})
	require.ErrorIs(t, err, ErrAssetNotFound)
}

func TestUpdateAsset_AvailabilityToggleAdjustsStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	err := env.service.UpdateAsset(ctx, "alice", id, UpdateAssetInput{
		Title:            "Soil sensor v2",
		Description:      "Recalibrated",
		Price:            150,
		IsAvailable:      false,
		QualityGuarantee: "98% uptime",
	})
	require.NoError(t, err)
	requireStats(t, env, AssetStats{Available: 0, Registered: 1})

	asset, err := env.service.GetAsset(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Soil sensor v2", asset.Title)
	require.Equal(t, uint64(150), asset.Price)
	require.False(t, asset.IsAvailable)

	err = env.service.UpdateAsset(ctx, "alice", id, UpdateAssetInput{
		Title:       "Soil sensor v2",
		Price:       150,
		IsAvailable: true,
	})
	require.NoError(t, err)
	requireStats(t, env, AssetStats{Available: 1, Registered: 1})
}

func TestCreateLease_HourlyCost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "sekrit")
	require.NoError(t, err)
	require.Equal(t, uint64(1), leaseID)

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.Equal(t, uint64(200), lease.TotalCost)
	require.Equal(t, "alice", lease.Lessor)
	require.Equal(t, "bob", lease.Lessee)
	require.Equal(t, testEpoch, lease.StartTime)
	require.Equal(t, testEpoch+7200, lease.EndTime)
	require.True(t, lease.IsActive)
	require.False(t, lease.IsPaid)
	require.Equal(t, "sekrit", lease.AccessKey)

	asset, err := env.service.GetAsset(ctx, assetID)
	require.NoError(t, err)
	require.False(t, asset.IsAvailable)
	requireStats(t, env, AssetStats{Available: 0, Leased: 1, Registered: 1})
}

func TestCreateLease_SubUnitDurationCostsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 3599, "k")
	require.NoError(t, err)

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lease.TotalCost)
}

func TestCreateLease_PayPerUseIgnoresDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 50, PaymentPayPerUse)

	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 1, "k")
	require.NoError(t, err)

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.Equal(t, uint64(50), lease.TotalCost)
}

func TestCreateLease_CostPerModel(t *testing.T) {
	cases := []struct {
		model    PaymentModel
		price    uint64
		duration uint64
		want     uint64
	}{
		{PaymentDaily, 10, 2 * 86400, 20},
		{PaymentWeekly, 7, 604800, 7},
		{PaymentMonthly, 1000, 2591999, 0},
	}

	for _, tc := range cases {
		env := newTestEnv(t)
		ctx := context.Background()
		assetID := registerTestAsset(t, env, "alice", tc.price, tc.model)

		leaseID, err := env.service.CreateLease(ctx, "bob", assetID, tc.duration, "k")
		require.NoError(t, err)

		lease, err := env.service.GetLease(ctx, leaseID)
		require.NoError(t, err)
		require.Equal(t, tc.want, lease.TotalCost, "model %s", tc.model)
	}
}

func TestCreateLease_UnavailableAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	_, err := env.service.CreateLease(ctx, "bob", assetID, 3600, "k")
	require.NoError(t, err)

	// Leased asset cannot be leased again until the lease ends.
	_, err = env.service.CreateLease(ctx, "carol", assetID, 3600, "k2")
	require.ErrorIs(t, err, ErrAssetUnavailable)
	requireStats(t, env, AssetStats{Available: 0, Leased: 1, Registered: 1})
}

func TestCreateLease_UnknownAsset(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateLease(context.Background(), "bob", 9, 3600, "k")
	require.ErrorIs(t, err, ErrAssetNotFound)
}

func TestProcessPayment_RecordsRevenue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)

	require.NoError(t, env.service.ProcessPayment(ctx, "bob", leaseID))

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.True(t, lease.IsPaid)
	requireStats(t, env, AssetStats{Available: 0, Leased: 1, Registered: 1, TotalRevenue: 200})
}

func TestProcessPayment_OnlyLessee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)

	require.ErrorIs(t, env.service.ProcessPayment(ctx, "alice", leaseID), ErrNotAuthorized)
}

func TestProcessPayment_DoublePaymentRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)

	require.NoError(t, env.service.ProcessPayment(ctx, "bob", leaseID))
	require.ErrorIs(t, env.service.ProcessPayment(ctx, "bob", leaseID), ErrLeaseAlreadyPaid)

	// Revenue counted exactly once.
	requireStats(t, env, AssetStats{Available: 0, Leased: 1, Registered: 1, TotalRevenue: 200})
}

func TestProcessPayment_InactiveLeaseRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)
	require.NoError(t, env.service.EndLease(ctx, "bob", leaseID))

	require.ErrorIs(t, env.service.ProcessPayment(ctx, "bob", leaseID), ErrLeaseNotActive)
}

func TestEndLease_EitherPartyMayEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)

	// Lessor ends the lease.
	require.NoError(t, env.service.EndLease(ctx, "alice", leaseID))

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.False(t, lease.IsActive)

	asset, err := env.service.GetAsset(ctx, assetID)
	require.NoError(t, err)
	require.True(t, asset.IsAvailable)
	requireStats(t, env, AssetStats{Available: 1, Leased: 0, Registered: 1})
}

func TestEndLease_SecondEndRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)

	require.NoError(t, env.service.EndLease(ctx, "bob", leaseID))
	require.ErrorIs(t, env.service.EndLease(ctx, "bob", leaseID), ErrLeaseNotActive)

	// Stats were not restored twice.
	requireStats(t, env, AssetStats{Available: 1, Leased: 0, Registered: 1})
}

func TestEndLease_StrangerRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)

	require.ErrorIs(t, env.service.EndLease(ctx, "carol", leaseID), ErrNotAuthorized)
}

func TestSubmitReview_LatestRatingWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	first, err := env.service.SubmitReview(ctx, "bob", assetID, 90, "great probe")
	require.NoError(t, err)
	require.Equal(t, uint64(1), first)

	second, err := env.service.SubmitReview(ctx, "carol", assetID, 40, "drifted after a week")
	require.NoError(t, err)
	require.Equal(t, uint64(2), second)

	// The newest review replaces the rating outright.
	asset, err := env.service.GetAsset(ctx, assetID)
	require.NoError(t, err)
	require.Equal(t, uint64(40), asset.Rating)

	review, err := env.service.GetReview(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "bob", review.Reviewer)
	require.Equal(t, uint64(90), review.Rating)
	require.Equal(t, testEpoch, review.ReviewTime)
}

func TestSubmitReview_RatingAbove100Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	_, err := env.service.SubmitReview(ctx, "bob", assetID, 101, "!")
	require.ErrorIs(t, err, ErrInvalidRating)

	// No review id was consumed and the asset rating is untouched.
	id, err := env.service.SubmitReview(ctx, "bob", assetID, 100, "fine")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
}

func TestSubmitReview_UnknownAsset(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.SubmitReview(context.Background(), "bob", 7, 50, "?")
	require.ErrorIs(t, err, ErrAssetNotFound)

	_, err = env.service.GetReview(context.Background(), 1)
	require.ErrorIs(t, err, ErrReviewNotFound)
}

func TestRaiseDispute_PartyOnActiveLease(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)

	require.ErrorIs(t, env.service.RaiseDispute(ctx, "carol", leaseID), ErrNotAuthorized)
	require.NoError(t, env.service.RaiseDispute(ctx, "bob", leaseID))

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.True(t, lease.DisputeRaised)
}

func TestRaiseDispute_InactiveLeaseRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)
	require.NoError(t, env.service.EndLease(ctx, "bob", leaseID))

	require.ErrorIs(t, env.service.RaiseDispute(ctx, "bob", leaseID), ErrLeaseNotActive)
}

func TestResolveDispute_RefundMath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 10*3600, "k") // cost 1000
	require.NoError(t, err)
	require.NoError(t, env.service.ProcessPayment(ctx, "bob", leaseID))
	require.NoError(t, env.service.RaiseDispute(ctx, "bob", leaseID))

	require.NoError(t, env.service.ResolveDispute(ctx, "arbiter", leaseID, 30))

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.False(t, lease.IsActive)
	require.False(t, lease.DisputeRaised)

	asset, err := env.service.GetAsset(ctx, assetID)
	require.NoError(t, err)
	require.True(t, asset.IsAvailable)

	// Refund of 30% of 1000 comes off total revenue.
	requireStats(t, env, AssetStats{Available: 1, Leased: 0, Registered: 1, TotalRevenue: 700})
}

func TestResolveDispute_AnyAuthenticatedIdentityMayResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 3600, "k")
	require.NoError(t, err)
	require.NoError(t, env.service.RaiseDispute(ctx, "bob", leaseID))

	// No arbiter role exists: an identity unrelated to the lease resolves it.
	require.NoError(t, env.service.ResolveDispute(ctx, "mallory", leaseID, 0))

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.False(t, lease.DisputeRaised)
}

func TestResolveDispute_RequiresRaisedDispute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 3600, "k")
	require.NoError(t, err)

	require.ErrorIs(t, env.service.ResolveDispute(ctx, "arbiter", leaseID, 50), ErrNoDisputeRaised)
}

func TestResolveDispute_RefundPercentageBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 3600, "k")
	require.NoError(t, err)
	require.NoError(t, env.service.RaiseDispute(ctx, "bob", leaseID))

	require.ErrorIs(t, env.service.ResolveDispute(ctx, "arbiter", leaseID, 101), ErrInvalidRefundPercentage)

	lease, err := env.service.GetLease(ctx, leaseID)
	require.NoError(t, err)
	require.True(t, lease.DisputeRaised)
}

// available + leased must never exceed registered. Lease-cycle operations
// keep the sum exactly equal; an owner toggling an unleased asset
// unavailable drops it out of available without entering leased, so the
// general guarantee is the inequality.
func TestStatsInvariant_AcrossOperationSequence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	checkBound := func() AssetStats {
		t.Helper()
		stats, err := env.service.GetAssetStats(ctx)
		require.NoError(t, err)
		require.LessOrEqual(t, stats.Available+stats.Leased, stats.Registered)
		return stats
	}
	checkExact := func() {
		t.Helper()
		stats := checkBound()
		require.Equal(t, stats.Registered, stats.Available+stats.Leased)
	}

	a1 := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	checkExact()
	a2 := registerTestAsset(t, env, "alice", 50, PaymentPayPerUse)
	checkExact()

	l1, err := env.service.CreateLease(ctx, "bob", a1, 7200, "k1")
	require.NoError(t, err)
	checkExact()
	l2, err := env.service.CreateLease(ctx, "carol", a2, 10, "k2")
	require.NoError(t, err)
	checkExact()

	require.NoError(t, env.service.ProcessPayment(ctx, "bob", l1))
	checkExact()
	require.NoError(t, env.service.EndLease(ctx, "bob", l1))
	checkExact()

	require.NoError(t, env.service.RaiseDispute(ctx, "carol", l2))
	checkExact()
	require.NoError(t, env.service.ResolveDispute(ctx, "arbiter", l2, 100))
	checkExact()

	// Delisting an unleased asset leaves it neither available nor leased.
	require.NoError(t, env.service.UpdateAsset(ctx, "alice", a1, UpdateAssetInput{Title: "T", IsAvailable: false}))
	delisted := checkBound()
	require.Equal(t, delisted.Registered-1, delisted.Available+delisted.Leased)

	require.NoError(t, env.service.UpdateAsset(ctx, "alice", a1, UpdateAssetInput{Title: "T", IsAvailable: true}))
	checkExact()
}

func TestGetAssetsByOwner_ExactSetInAscendingOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a1 := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	registerTestAsset(t, env, "bob", 200, PaymentDaily)
	a3 := registerTestAsset(t, env, "alice", 300, PaymentWeekly)

	assets, err := env.service.GetAssetsByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, assets, 2)
	require.Equal(t, a1, assets[0].ID)
	require.Equal(t, a3, assets[1].ID)

	none, err := env.service.GetAssetsByOwner(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGetLeasesByLessee_ActiveOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a1 := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	a2 := registerTestAsset(t, env, "alice", 100, PaymentHourly)

	l1, err := env.service.CreateLease(ctx, "bob", a1, 3600, "k1")
	require.NoError(t, err)
	l2, err := env.service.CreateLease(ctx, "bob", a2, 3600, "k2")
	require.NoError(t, err)
	require.NoError(t, env.service.EndLease(ctx, "bob", l1))

	leases, err := env.service.GetLeasesByLessee(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, leases, 1)
	require.Equal(t, l2, leases[0].ID)
}

func TestGetAvailableAssetsByType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a1 := registerTestAsset(t, env, "alice", 100, PaymentHourly) // sensor
	_, err := env.service.RegisterAsset(ctx, "alice", RegisterAssetInput{
		Title:        "Edge gateway",
		AssetType:    "gateway",
		PaymentModel: PaymentMonthly,
		Price:        5000,
	})
	require.NoError(t, err)
	a3 := registerTestAsset(t, env, "bob", 100, PaymentHourly) // sensor

	// Lease a3 away; only a1 stays available in its type.
	_, err = env.service.CreateLease(ctx, "carol", a3, 3600, "k")
	require.NoError(t, err)

	sensors, err := env.service.GetAvailableAssetsByType(ctx, "sensor")
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	require.Equal(t, a1, sensors[0].ID)
}

func TestEngine_PublishesEventsAfterCommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assetID := registerTestAsset(t, env, "alice", 100, PaymentHourly)
	leaseID, err := env.service.CreateLease(ctx, "bob", assetID, 7200, "k")
	require.NoError(t, err)
	require.NoError(t, env.service.RaiseDispute(ctx, "bob", leaseID))

	types := make([]string, 0, len(env.sink.events))
	for _, ev := range env.sink.events {
		types = append(types, ev.Type)
	}
	require.Equal(t, []string{
		EventMarketplaceInitialized,
		EventAssetRegistered,
		EventLeaseCreated,
		EventDisputeRaised,
	}, types)

	// Failed operations publish nothing.
	before := len(env.sink.events)
	_, err = env.service.CreateLease(ctx, "carol", assetID, 3600, "k2")
	require.ErrorIs(t, err, ErrAssetUnavailable)
	require.Len(t, env.sink.events, before)
}
