package pgas

// RemoteArray is a fixed-length array owned by exactly one rank but
// reachable from any rank's goroutine through Get and Put, the simulated
// equivalents of upcxx::rget/upcxx::rput on a global_ptr. Get and Put are
// lock-free: a real RMA get/put never takes a lock on the target process,
// and this package upholds the same contract. Callers outside this package
// are responsible for the single-writer-per-index discipline spec.md §3
// requires (enforced in this module via the CAS-gated claim in hashmap.go);
// RemoteArray itself performs no coordination beyond indexed access.
type RemoteArray[T any] struct {
	owner int
	data  []T
}

// NewRemoteArray allocates a length-n array attributed to owner. Every rank
// calls this once per stripe during construction and broadcasts the
// resulting handle, mirroring upcxx::new_array followed by
// upcxx::broadcast(ptr, owner).
func NewRemoteArray[T any](owner int, n int) *RemoteArray[T] {
	return &RemoteArray[T]{owner: owner, data: make([]T, n)}
}

// Owner returns the rank this array's memory is attributed to.
func (a *RemoteArray[T]) Owner() int {
	return a.owner
}

// Len returns the array's length.
func (a *RemoteArray[T]) Len() int {
	return len(a.data)
}

// Get performs a blocking one-sided read of index i. The caller may be any
// rank, including a.Owner().
func (a *RemoteArray[T]) Get(i int) T {
	return a.data[i]
}

// Put performs a blocking one-sided write of v to index i. The caller may
// be any rank; it is the caller's responsibility to ensure no other rank
// writes the same index concurrently (see the RemoteArray doc).
func (a *RemoteArray[T]) Put(i int, v T) {
	a.data[i] = v
}

// GetRange reads a contiguous span, the simulated equivalent of a single
// blocking rget of a record range (spec.md §4.4's shipment puts len records
// at once).
func (a *RemoteArray[T]) GetRange(start, length int) []T {
	out := make([]T, length)
	copy(out, a.data[start:start+length])
	return out
}

// PutRange writes a contiguous span in one call, the simulated equivalent
// of the bulk rput used to ship an outbox into a target's overflow region.
func (a *RemoteArray[T]) PutRange(start int, values []T) {
	copy(a.data[start:start+len(values)], values)
}
