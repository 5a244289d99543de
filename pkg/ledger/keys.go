package ledger

import "fmt"

// Key addresses one entry in the flat ledger keyspace. Entities are keyed by
// kind and id; counters and the stats singleton use fixed keys.
type Key string

const (
	KeyAssetCounter  Key = "cnt/asset"
	KeyLeaseCounter  Key = "cnt/lease"
	KeyReviewCounter Key = "cnt/review"
	KeyStats         Key = "stats"
)

func AssetKey(id uint64) Key {
	return Key(fmt.Sprintf("asset/%d", id))
}

func LeaseKey(id uint64) Key {
	return Key(fmt.Sprintf("lease/%d", id))
}

func ReviewKey(id uint64) Key {
	return Key(fmt.Sprintf("review/%d", id))
}
