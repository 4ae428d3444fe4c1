// Package kmerhash provides a concurrency-safe, distributed open-addressing
// hash table for parallel de Bruijn graph assembly. Fixed-width k-mer
// records are keyed by a canonical k-mer value and partitioned in
// contiguous stripes across P cooperating ranks that share a global address
// space through one-sided remote memory access and remote atomics,
// simulated in-process by the internal/pgas package.
//
// Insertion has two phases. During streaming (Insert), a rank claims slots
// in its own stripe directly and defers anything destined for another
// rank's stripe into a small per-target outbox, which is shipped in bulk
// once full. FinishInsert is the collective phase barrier: it flushes every
// remaining outbox into the target's overflow region, waits for every rank
// to reach that point, then has each rank drain its own overflow back
// through the same probe sequence, this time claiming slots via remote
// compare-and-swap wherever probing spills past its own stripe. Find probes
// the same sequence and never stops on an empty slot, because the
// two-stage insert can leave gaps that fill in later in the sequence.
package kmerhash
