package marketplace

import "context"

// RegisterAssetInput carries the owner-supplied fields of a new listing.
type RegisterAssetInput struct {
	Title            string
	Description      string
	AssetType        string
	Location         string
	Price            uint64
	PaymentModel     PaymentModel
	QualityGuarantee string
}

// UpdateAssetInput carries the mutable fields of an existing listing.
type UpdateAssetInput struct {
	Title            string
	Description      string
	Price            uint64
	IsAvailable      bool
	QualityGuarantee string
}

// MarketplaceService is the full operation surface of the leasing engine.
// Identity arguments name the role the caller claims; every mutating
// operation authenticates that claim before touching state.
type MarketplaceService interface {
	Initialize(ctx context.Context) error

	RegisterAsset(ctx context.Context, owner string, input RegisterAssetInput) (uint64, error)
	UpdateAsset(ctx context.Context, owner string, assetID uint64, input UpdateAssetInput) error

	CreateLease(ctx context.Context, lessee string, assetID, durationSeconds uint64, accessKey string) (uint64, error)
	ProcessPayment(ctx context.Context, payer string, leaseID uint64) error
	EndLease(ctx context.Context, caller string, leaseID uint64) error

	SubmitReview(ctx context.Context, reviewer string, assetID, rating uint64, comment string) (uint64, error)

	RaiseDispute(ctx context.Context, caller string, leaseID uint64) error
	ResolveDispute(ctx context.Context, admin string, leaseID, refundPercentage uint64) error

	GetAssetsByOwner(ctx context.Context, owner string) ([]Asset, error)
	GetLeasesByLessee(ctx context.Context, lessee string) ([]Lease, error)
	GetAvailableAssetsByType(ctx context.Context, assetType string) ([]Asset, error)

	GetAsset(ctx context.Context, assetID uint64) (Asset, error)
	GetLease(ctx context.Context, leaseID uint64) (Lease, error)
	GetReview(ctx context.Context, reviewID uint64) (Review, error)
	GetAssetStats(ctx context.Context) (AssetStats, error)
}
