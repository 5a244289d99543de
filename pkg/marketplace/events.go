package marketplace

// Event types published after each committed mutation.
const (
	EventMarketplaceInitialized = "marketplace_initialized"
	EventAssetRegistered        = "asset_registered"
	EventAssetUpdated           = "asset_updated"
	EventLeaseCreated           = "lease_created"
	EventPaymentProcessed       = "payment_processed"
	EventLeaseEnded             = "lease_ended"
	EventReviewSubmitted        = "review_submitted"
	EventDisputeRaised          = "dispute_raised"
	EventDisputeResolved        = "dispute_resolved"
)

// Event describes one committed operation. Parties lists the identities that
// are entitled to see it (actor, owner, lessor, lessee).
type Event struct {
	Type     string   `json:"type"`
	Actor    string   `json:"actor,omitempty"`
	AssetID  uint64   `json:"asset_id,omitempty"`
	LeaseID  uint64   `json:"lease_id,omitempty"`
	ReviewID uint64   `json:"review_id,omitempty"`
	Amount   uint64   `json:"amount,omitempty"` // cost, payment or refund
	Parties  []string `json:"-"`
	Time     uint64   `json:"time"`
}

// EventSink receives events after the operation that produced them has
// committed. Publish must not block the engine; slow consumers buffer or
// drop on their own.
type EventSink interface {
	Publish(ev Event)
}
