package marketplace

import "errors"

// Every rule violation aborts the whole operation: nothing is written, no id
// is consumed, and the error surfaces to the caller unchanged.
var (
	// AuthorizationError: the caller authenticated but is not the required
	// role for the operation (owner, lessor or lessee).
	ErrNotAuthorized = errors.New("caller is not authorized for this operation")

	// NotFound.
	ErrAssetNotFound  = errors.New("asset not found")
	ErrLeaseNotFound  = errors.New("lease not found")
	ErrReviewNotFound = errors.New("review not found")

	// ValidationError.
	ErrInvalidRating           = errors.New("rating must be between 0 and 100")
	ErrInvalidRefundPercentage = errors.New("refund percentage must be between 0 and 100")
	ErrInvalidPaymentModel     = errors.New("unknown payment model")

	// InvalidState.
	ErrAssetUnavailable = errors.New("asset is not available for lease")
	ErrLeaseNotActive   = errors.New("lease is not active")
	ErrLeaseAlreadyPaid = errors.New("lease is already paid")
	ErrNoDisputeRaised  = errors.New("no dispute raised for this lease")
)
