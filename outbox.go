package kmerhash

import "go.uber.org/zap"

// Deposit buffers r for delivery to target's overflow region, without
// touching target's memory directly (spec.md §4.4). Insert decides on its
// own which target a record ships to as it walks the probe sequence;
// Deposit exists for callers that already know a record's target rank by
// some means of their own (a pre-partitioned input file, say) and want to
// skip Insert's own probing to get there.
func (m *HashMap) Deposit(target int, r Record) {
	m.depositOutbox(target, r)
}

// depositOutbox appends r to the buffer staged for target and ships the
// buffer once it fills (spec.md §4.4). This is the streaming-phase fast
// path: it never touches target's memory directly, so a rank can deposit
// as fast as it can hash records, with no remote round trip until a batch
// is full.
func (m *HashMap) depositOutbox(target int, r Record) {
	i := m.outboxLen[target]
	m.outbox[target][i] = r
	i++
	m.outboxLen[target] = i
	if i == m.cfg.outboxSize {
		m.shipOutbox(target)
	}
}

// shipOutbox ships whatever is currently staged for target, if anything,
// and resets that outbox's length to zero. Per spec.md §9's resolved open
// question, a zero-length outbox is skipped rather than reserving an empty
// range.
func (m *HashMap) shipOutbox(target int) {
	length := m.outboxLen[target]
	if length == 0 {
		return
	}
	batch := make([]Record, length)
	copy(batch, m.outbox[target][:length])
	m.outboxLen[target] = 0
	m.shipBatch(target, batch)
}

// shipBatch reserves a disjoint range in target's overflow region via a
// single fetch_add, then puts the whole batch into that range in one call
// (spec.md §4.4, steps 1-2). Concurrent shippers from different ranks never
// collide because the fetch_add pre-reserves their ranges.
func (m *HashMap) shipBatch(target int, batch []Record) {
	length := len(batch)
	if length == 0 {
		return
	}
	counter := m.tables.counters[target]
	offset := m.ad.FetchAdd(counter.Cell(), uint64(length))
	capacity := uint64(m.tables.overflow[target].Len())
	if offset+uint64(length) > capacity {
		panic(fmtOverflowSaturated(target, int(offset), length, int(capacity)))
	}
	m.tables.overflow[target].PutRange(int(offset), batch)
	m.cfg.logger.Debug("shipped outbox batch",
		zap.Int("from_rank", m.rank.Me()),
		zap.Int("to_rank", target),
		zap.Int("count", length),
		zap.Uint64("reserved_offset", offset),
	)
}
