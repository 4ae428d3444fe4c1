package kmerhash

import (
	"fmt"

	"gopkg.in/gholt/brimtext.v1"
)

// Stats is a snapshot of one rank's table occupancy and overflow traffic,
// gathered without any collective synchronization: it reports only the
// calling rank's own stripe and overflow region (spec.md §5's Stats,
// scoped per-rank since the runtime this module simulates has no cheap way
// to gather every rank's counters without a round trip).
type Stats struct {
	// Rank is the id of the rank this snapshot was taken from.
	Rank int
	// StripeWidth is this rank's B, the number of slots in its own stripe.
	StripeWidth uint64
	// UsedSlots is the number of claimed (occupied) slots in this rank's
	// own stripe.
	UsedSlots uint64
	// OverflowCapacity is the size of this rank's overflow region, B
	// (spec.md §3's overflow[0..B)), the same as StripeWidth.
	OverflowCapacity int
	// OverflowReserved is the current value of this rank's overflow_count,
	// the high-water mark of everything shipped to it so far.
	OverflowReserved uint64
}

// Stats gathers a snapshot of this rank's own stripe and overflow region.
// It walks the stripe's used-flags with ordinary atomic loads, so it may be
// called concurrently with Insert and Find without additional locking.
func (m *HashMap) Stats() *Stats {
	mine := m.rank.Me()
	var used uint64
	stripe := m.tables.used[mine]
	for i := 0; i < stripe.Len(); i++ {
		if m.ad.Load(stripe.At(i)) != 0 {
			used++
		}
	}
	counter := m.tables.counters[mine]
	return &Stats{
		Rank:             mine,
		StripeWidth:      m.b,
		UsedSlots:        used,
		OverflowCapacity: m.tables.overflow[mine].Len(),
		OverflowReserved: m.ad.LoadUint64(counter.Cell()),
	}
}

// String renders the snapshot as an aligned table, matching the rendering
// style used elsewhere in this package's ancestry for diagnostic output.
func (s *Stats) String() string {
	fillPct := 0.0
	if s.StripeWidth > 0 {
		fillPct = 100 * float64(s.UsedSlots) / float64(s.StripeWidth)
	}
	overflowPct := 0.0
	if s.OverflowCapacity > 0 {
		overflowPct = 100 * float64(s.OverflowReserved) / float64(s.OverflowCapacity)
	}
	report := [][]string{
		{"Rank", fmt.Sprintf("%d", s.Rank)},
		{"StripeWidth", fmt.Sprintf("%d", s.StripeWidth)},
		{"UsedSlots", fmt.Sprintf("%d %.1f%%", s.UsedSlots, fillPct)},
		{"OverflowCapacity", fmt.Sprintf("%d", s.OverflowCapacity)},
		{"OverflowReserved", fmt.Sprintf("%d %.1f%%", s.OverflowReserved, overflowPct)},
	}
	return brimtext.Align(report, nil)
}
