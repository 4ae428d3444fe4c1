package kmerhash

import (
	"errors"
	"fmt"
)

// ErrSaturated is wrapped, with the probing rank and key hash, into the
// panic FinishInsert raises when draining a record from the overflow region
// walks every slot in the table (spec.md §7, "Saturation on insert")
// without finding an empty one. Insert never returns or logs this error: it
// reports the same condition only as a false boolean.
var ErrSaturated = errors.New("kmerhash: table saturated, no slot available")

// ErrOverflowSaturated is the fatal condition spec.md §7 calls "Overflow
// saturation": a shipment's fetch_add reservation would run past the end of
// the target stripe's overflow region. Shipping an outbox panics with an
// error wrapping this, naming the offending stripe; a shipment happens
// inside Insert or Deposit when an outbox fills, and inside FinishInsert
// when it flushes the remaining outboxes.
var ErrOverflowSaturated = errors.New("kmerhash: overflow region saturated for target stripe")

func fmtSaturated(rank int, hash uint64) error {
	return fmt.Errorf("%w: rank=%d hash=%#x", ErrSaturated, rank, hash)
}

func fmtOverflowSaturated(target int, offset, length, capacity int) error {
	return fmt.Errorf("%w: target=%d offset=%d length=%d capacity=%d", ErrOverflowSaturated, target, offset, length, capacity)
}
