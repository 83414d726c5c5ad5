package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// numberSuffixMod keeps the millisecond component at five digits so the
// generated number stays a fixed width.
const numberSuffixMod = 100000

var randomSuffixMax = big.NewInt(1000)

// NewOrderNumber builds a human-readable order number of the form
// ORD-{yyyyMMdd}-{mmmmm}{rrr} where mmmmm is the last five digits of the
// epoch millisecond timestamp and rrr is a random three digit component.
// Collisions are possible within the same millisecond window and are caught
// by the unique index on orders.order_number.
func NewOrderNumber(now time.Time) string {
	millis := now.UnixMilli() % numberSuffixMod

	n, err := rand.Int(rand.Reader, randomSuffixMax)
	var suffix int64
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// the nanosecond clock keeps the number usable until retry.
		suffix = int64(now.Nanosecond()) % 1000
	} else {
		suffix = n.Int64()
	}

	return fmt.Sprintf("ORD-%s-%05d%03d", now.Format("20060102"), millis, suffix)
}
