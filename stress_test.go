// Will be run if environment long_test=true.
// Since this exercises concurrency across simulated ranks, you probably
// want to run with something like:
// $ long_test=true go test -run TestStressConcurrentInsertLong -cpu=1,3,7

package kmerhash

import (
	"encoding/binary"
	"os"
	"sync"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/gholt/brimutil.v1"
)

// u64Key is a minimal Record used only by this package's own tests, so
// stress and unit tests don't need to depend on the kmer package's
// reference implementation.
type u64Key uint64

func (k u64Key) Hash() uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(k))
	return xxhash.Sum64(buf[:])
}

func (k u64Key) SameKey(other Record) bool {
	o, ok := other.(u64Key)
	return ok && o == k
}

var runLongTests bool

func init() {
	if os.Getenv("long_test") == "true" {
		runLongTests = true
	}
}

// TestStressConcurrentInsertLong streams a large, scrambled keyset into a
// p-rank table concurrently, drains overflow with FinishInsert, and checks
// every key that was accepted by Insert is found afterward by the rank
// that inserted it (spec.md §8 invariant 1).
func TestStressConcurrentInsertLong(t *testing.T) {
	if !runLongTests {
		t.Skip("skipping unless env long_test=true")
	}
	const p = 7
	const perRank = 50000

	maps, err := Construct(p, uint64(p*perRank*2), OptOutboxSize(4096))
	require.NoError(t, err)

	accepted := make([][]uint64, p)
	var wg sync.WaitGroup
	wg.Add(p)
	for id := 0; id < p; id++ {
		go func(id int) {
			defer wg.Done()
			m := maps[id]
			seedBytes := make([]byte, perRank*8)
			brimutil.NewSeededScrambled(int64(id)).Read(seedBytes)
			local := make([]uint64, 0, perRank)
			for i := 0; i < perRank; i++ {
				raw := binary.BigEndian.Uint64(seedBytes[i*8:])
				key := u64Key(raw)
				if m.Insert(key) {
					local = append(local, raw)
				}
			}
			accepted[id] = local
			m.FinishInsert()
		}(id)
	}
	wg.Wait()

	for id := 0; id < p; id++ {
		m := maps[id]
		for _, raw := range accepted[id] {
			var out Record
			require.True(t, m.Find(u64Key(raw), &out), "rank %d missing key %x", id, raw)
		}
	}
}
