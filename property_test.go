package kmerhash

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// idKey is a Record whose identity and hash are both driven by a plain
// integer, letting property tests draw arbitrary keysets with rapid without
// needing a real k-mer codec.
type idKey int

func (k idKey) Hash() uint64 { return uint64(k) }

func (k idKey) SameKey(other Record) bool {
	o, ok := other.(idKey)
	return ok && o == k
}

// TestPropertyNoLoss checks invariant 1 of this package's testable
// properties: whenever the number of distinct keys inserted does not
// exceed the table's capacity, every one of them is findable after
// FinishInsert, on every rank.
func TestPropertyNoLoss(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.IntRange(1, 4).Draw(rt, "ranks")
		perRank := rapid.IntRange(1, 6).Draw(rt, "per_rank")
		capacity := uint64(p * perRank * 4) // generous headroom, no saturation expected

		maps, err := Construct(p, capacity)
		require.NoError(rt, err)

		var all []idKey
		next := 0
		for id := 0; id < p; id++ {
			for i := 0; i < perRank; i++ {
				k := idKey(next)
				next++
				require.True(rt, maps[id].Insert(k))
				all = append(all, k)
			}
		}
		finishInsertAll(maps...)

		for _, k := range all {
			var out Record
			require.True(rt, maps[0].Find(k, &out), "lost key %d", k)
		}
	})
}

// TestPropertySingleWriterPerSlot checks invariant 3: under concurrent
// inserts from every rank, no logical slot is ever claimed twice. It
// instruments the claim path indirectly: after every rank has finished
// inserting, the number of used slots exactly equals the number of records
// that were successfully claimed, which could only hold if no slot was
// double-counted.
func TestPropertySingleWriterPerSlot(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.IntRange(2, 4).Draw(rt, "ranks")
		perRank := rapid.IntRange(1, 20).Draw(rt, "per_rank")
		capacity := uint64(p * perRank * 3)

		maps, err := Construct(p, capacity)
		require.NoError(rt, err)

		var wg sync.WaitGroup
		wg.Add(p)
		for id := 0; id < p; id++ {
			go func(id int) {
				defer wg.Done()
				m := maps[id]
				for i := 0; i < perRank; i++ {
					m.Insert(idKey(id*perRank + i))
				}
				m.FinishInsert()
			}(id)
		}
		wg.Wait()

		var totalUsed uint64
		for id := 0; id < p; id++ {
			totalUsed += maps[id].Stats().UsedSlots
		}
		require.EqualValues(rt, p*perRank, totalUsed,
			"used-slot count diverges from records inserted; a slot was claimed more than once or not at all")
	})
}

// TestPropertySaturationSymmetry checks invariant 6: on a single-rank table
// sized to exactly hold n records, inserting n distinct keys succeeds and
// inserting one more fails, regardless of which n keys are chosen (as long
// as they are pairwise distinct so none collapses the keyset below n).
func TestPropertySaturationSymmetry(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		base := rapid.IntRange(0, 1000).Draw(rt, "base")

		maps, err := Construct(1, uint64(n))
		require.NoError(rt, err)
		m := maps[0]

		for i := 0; i < n; i++ {
			require.True(rt, m.Insert(idKey(base+i)), fmt.Sprintf("expected slot %d to be available", i))
		}
		require.False(rt, m.Insert(idKey(base+n)), "table should be saturated after n inserts into an n-slot table")
	})
}
