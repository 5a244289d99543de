package marketplace

// PaymentModel selects how lease cost is derived from duration.
type PaymentModel string

const (
	PaymentHourly    PaymentModel = "hourly"
	PaymentDaily     PaymentModel = "daily"
	PaymentWeekly    PaymentModel = "weekly"
	PaymentMonthly   PaymentModel = "monthly"
	PaymentPayPerUse PaymentModel = "pay_per_use"
)

func (m PaymentModel) Valid() bool {
	switch m {
	case PaymentHourly, PaymentDaily, PaymentWeekly, PaymentMonthly, PaymentPayPerUse:
		return true
	default:
		return false
	}
}

// Billing unit lengths in seconds.
const (
	secondsPerHour  = 3600
	secondsPerDay   = 86400
	secondsPerWeek  = 604800
	secondsPerMonth = 2592000
)

// leaseCost derives the total cost of a lease. Time-based models bill whole
// elapsed units only; a duration shorter than one unit costs nothing.
func leaseCost(price uint64, model PaymentModel, durationSeconds uint64) uint64 {
	switch model {
	case PaymentHourly:
		return price * (durationSeconds / secondsPerHour)
	case PaymentDaily:
		return price * (durationSeconds / secondsPerDay)
	case PaymentWeekly:
		return price * (durationSeconds / secondsPerWeek)
	case PaymentMonthly:
		return price * (durationSeconds / secondsPerMonth)
	default: // pay-per-use ignores duration
		return price
	}
}

// Asset is a leasable resource listed by an owner. Prices are unsigned
// integers in the smallest currency unit.
type Asset struct {
	ID               uint64       `json:"id"`
	Owner            string       `json:"owner"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	AssetType        string       `json:"asset_type"`
	Location         string       `json:"location"`
	Price            uint64       `json:"price"`
	PaymentModel     PaymentModel `json:"payment_model"`
	IsAvailable      bool         `json:"is_available"`
	CreatedTime      uint64       `json:"created_time"`
	QualityGuarantee string       `json:"quality_guarantee"`
	Rating           uint64       `json:"rating"` // 0..100, latest review wins
}

// Lease is a time-bounded right to use an asset.
type Lease struct {
	ID            uint64 `json:"id"`
	AssetID       uint64 `json:"asset_id"`
	Lessor        string `json:"lessor"` // asset owner at creation time
	Lessee        string `json:"lessee"`
	StartTime     uint64 `json:"start_time"`
	EndTime       uint64 `json:"end_time"`
	TotalCost     uint64 `json:"total_cost"`
	IsActive      bool   `json:"is_active"`
	IsPaid        bool   `json:"is_paid"`
	AccessKey     string `json:"access_key"`
	DisputeRaised bool   `json:"dispute_raised"`
}

// Review is an append-only rating record for an asset.
type Review struct {
	ID         uint64 `json:"id"`
	AssetID    uint64 `json:"asset_id"`
	Reviewer   string `json:"reviewer"`
	Rating     uint64 `json:"rating"` // 0..100
	Comment    string `json:"comment"`
	ReviewTime uint64 `json:"review_time"`
}

// AssetStats is the marketplace-wide aggregate singleton.
type AssetStats struct {
	Available    uint64 `json:"available"`
	Leased       uint64 `json:"leased"`
	Registered   uint64 `json:"registered"`
	TotalRevenue uint64 `json:"total_revenue"`
}
