package kmerhash

import (
	"github.com/Chazzzzzzz/cs267-hw3/internal/pgas"
	"go.uber.org/zap"
)

// clusterTables holds the address tables every rank's HashMap holds a copy
// of after Construct's bootstrap broadcast (spec.md §4.7): one data stripe,
// one used-flag stripe, one overflow region and one overflow counter per
// rank, indexed by rank.
type clusterTables struct {
	data     []*pgas.RemoteArray[Record]
	used     []*pgas.RemoteCellArray
	overflow []*pgas.RemoteArray[Record]
	counters []*pgas.RemoteCounter
}

// HashMap is one rank's handle onto a distributed open-addressing table of
// size n, partitioned into P stripes of width B = n/P (spec.md §3, §4.1).
// Every rank in a Construct call gets its own *HashMap, all sharing the same
// clusterTables and Team, so that cross-rank access always goes through the
// pgas package rather than through a shared Go pointer to another rank's
// slot memory.
type HashMap struct {
	team   *pgas.Team
	rank   *pgas.Rank
	ad     *pgas.AtomicDomain
	n      uint64 // total logical slot count, a multiple of P
	b      uint64 // stripe width, n/P
	cfg    *config
	tables *clusterTables

	outbox    [][]Record // outbox[target] staged records not yet shipped
	outboxLen []int
}

// roundUp returns the smallest multiple of p that is >= size, so that n/p
// divides evenly and every stripe has the same width (spec.md §4.1).
func roundUp(size, p uint64) uint64 {
	if p == 0 {
		return size
	}
	if rem := size % p; rem != 0 {
		size += p - rem
	}
	return size
}

// Construct builds a table collectively across p simulated ranks, sized to
// hold at least size logical slots, and returns one *HashMap per rank
// (spec.md §4.7's "Construction"). size is rounded up to the nearest
// multiple of p so every stripe has equal width. Every returned HashMap
// shares the same underlying clusterTables: cross-rank access among them
// goes exclusively through the internal/pgas handles stored there, never
// through a shared Go slice index.
func Construct(p int, size uint64, opts ...Option) ([]*HashMap, error) {
	if p < 1 {
		p = 1
	}
	n := roundUp(size, uint64(p))
	b := n / uint64(p)
	cfg := resolveConfig(opts...)

	tables := &clusterTables{
		data:     make([]*pgas.RemoteArray[Record], p),
		used:     make([]*pgas.RemoteCellArray, p),
		overflow: make([]*pgas.RemoteArray[Record], p),
		counters: make([]*pgas.RemoteCounter, p),
	}
	team := pgas.NewTeam(p)
	ad := pgas.NewAtomicDomain()

	// Each rank allocates its own stripe and counter, then broadcasts the
	// handle so every other rank's table ends up pointing at the same
	// memory (spec.md §4.7). Construct runs before any rank's insert
	// goroutine starts, so building all p stripes from rank 0's thread of
	// control is equivalent to each rank broadcasting its own handle.
	for owner := 0; owner < p; owner++ {
		dataHandle := pgas.NewRemoteArray[Record](owner, int(b))
		usedHandle := pgas.NewRemoteCellArray(owner, int(b))
		overflowHandle := pgas.NewRemoteArray[Record](owner, int(b))
		counterHandle := pgas.NewRemoteCounter(owner)

		// Every rank's copy of each handle is identical (see pgas.Broadcast),
		// so indexing the broadcast result at [0] and storing it once in the
		// shared clusterTables is equivalent to every rank separately
		// broadcasting and recording its own copy.
		tables.data[owner] = pgas.Broadcast(team, dataHandle)[0]
		tables.used[owner] = pgas.Broadcast(team, usedHandle)[0]
		tables.overflow[owner] = pgas.Broadcast(team, overflowHandle)[0]
		tables.counters[owner] = pgas.Broadcast(team, counterHandle)[0]
	}

	maps := make([]*HashMap, p)
	for id := 0; id < p; id++ {
		outbox := make([][]Record, p)
		for t := range outbox {
			outbox[t] = make([]Record, cfg.outboxSize)
		}
		maps[id] = &HashMap{
			team:      team,
			rank:      team.Rank(id),
			ad:        ad,
			n:         n,
			b:         b,
			cfg:       cfg,
			tables:    tables,
			outbox:    outbox,
			outboxLen: make([]int, p),
		}
	}
	return maps, nil
}

// Rank returns this handle's rank id within its table.
func (m *HashMap) Rank() int {
	return m.rank.Me()
}

// Size returns the table's total logical slot count n.
func (m *HashMap) Size() uint64 {
	return m.n
}

// claim attempts the single CAS that gives the calling rank ownership of
// logical slot s, and on success writes r into that slot (spec.md §4.2,
// §4.3). The same CAS-on-the-same-cell path is used whether node(s) is the
// calling rank or a different one: see DESIGN.md for why this module does
// not give the local case a separate non-atomic fast path.
func (m *HashMap) claim(s uint64, r Record) bool {
	node := nodeOf(s, m.b)
	offset := offsetOf(s, m.b)
	cell := m.tables.used[node].At(offset)
	if !m.ad.CompareExchange(cell, 0, 1) {
		return false
	}
	m.tables.data[node].Put(offset, r)
	return true
}

// Insert attempts to place r in the table (spec.md §4.3). Along the
// calling rank's own stripe, it claims the first open slot in the probe
// sequence directly. If the sequence leaves the calling rank's stripe
// before a slot is claimed, the record is handed to the outbox for the
// rank that owns the next slot in the sequence rather than claimed with a
// remote CAS on the spot (spec.md §4.4) — so Insert returns true as soon
// as r is either claimed or handed off, and only reports false (spec.md
// §7's "Saturation on insert") when the calling rank's own stripe is full
// and every slot belongs to it (the P=1 case, and only that case, since
// any other probe sequence reaches a foreign stripe before wrapping back).
func (m *HashMap) Insert(r Record) bool {
	return m.insert(r, false)
}

// insert is Insert's shared implementation. drain is true when called from
// FinishInsert's local overflow drain (spec.md §4.5): draining never defers
// to the outbox again, since a record reaching the overflow region has
// already been shipped once — instead it probes across partitions with a
// direct remote CAS, claiming whichever rank's slot comes next in sequence
// (spec.md §4.5, §9's rationale for heterogeneous claim paths).
func (m *HashMap) insert(r Record, drain bool) bool {
	hash := r.Hash()
	mine := m.rank.Me()
	handled := probe(hash, m.n, func(s uint64) bool {
		node := nodeOf(s, m.b)
		if !drain && node != mine {
			m.depositOutbox(node, r)
			return true
		}
		return m.claim(s, r)
	})
	if !handled {
		m.cfg.logger.Debug("insert exhausted probe sequence",
			zap.Int("rank", mine),
			zap.Bool("drain", drain),
			zap.Uint64("hash", hash),
		)
	}
	return handled
}

// Find reports whether a record matching key's identity is present, and if
// so copies it into out. It probes all n slots rather than stopping at the
// first empty one it sees (spec.md §4.6, §9): under the two-phase protocol
// a slot that is empty when Find visits it may still be filled later by a
// shipment that has not drained yet, so an empty slot never proves absence.
func (m *HashMap) Find(key Record, out *Record) bool {
	hash := key.Hash()
	found := probe(hash, m.n, func(s uint64) bool {
		node := nodeOf(s, m.b)
		offset := offsetOf(s, m.b)
		cell := m.tables.used[node].At(offset)
		if m.ad.Load(cell) == 0 {
			return false
		}
		candidate := m.tables.data[node].Get(offset)
		if !candidate.SameKey(key) {
			return false
		}
		*out = candidate
		return true
	})
	return found
}
