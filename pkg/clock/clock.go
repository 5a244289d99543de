package clock

import "time"

// Clock supplies ledger time in seconds since the Unix epoch. Entity
// timestamps (created_time, start_time, review_time) come from here and
// nowhere else.
type Clock interface {
	Now() uint64
}

type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
