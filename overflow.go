package kmerhash

import "go.uber.org/zap"

// FinishInsert ends the streaming phase and drains the overflow region
// (spec.md §4.5). It flushes every remaining outbox regardless of fill
// level, waits for every rank to reach the same point, drains this rank's
// own overflow region by reinserting each shipped record, and waits once
// more so that no rank returns, and so no rank's Find runs, before every
// rank's drain has completed (spec.md §8 invariant 5, the happens-before
// requirement this module resolves with a second barrier; see DESIGN.md).
//
// FinishInsert panics with an error wrapping ErrSaturated if draining a
// record exhausts the probe sequence: by the time a record has reached the
// overflow region its only remaining home is a slot found by probing, and
// there is no further overflow tier to fall back to. The flush can also
// panic with ErrOverflowSaturated (see shipBatch).
func (m *HashMap) FinishInsert() {
	for target := 0; target < m.rank.N(); target++ {
		m.shipOutbox(target)
	}
	m.team.Barrier()

	mine := m.rank.Me()
	counter := m.tables.counters[mine]
	count := m.ad.LoadUint64(counter.Cell())
	if count > 0 {
		records := m.tables.overflow[mine].GetRange(0, int(count))
		for _, r := range records {
			if !m.insert(r, true) {
				panic(fmtSaturated(mine, r.Hash()))
			}
		}
		m.cfg.logger.Debug("drained overflow region",
			zap.Int("rank", mine),
			zap.Uint64("count", count),
		)
	}

	m.team.Barrier()
}
