package pgas

import "sync/atomic"

// Uint32Cell is a remotely addressable 32-bit integer cell, the simulated
// equivalent of a global_ptr<int> used as the target of a remote CAS (the
// slot-occupancy flags in spec.md §3).
type Uint32Cell struct {
	v atomic.Uint32
}

// Uint64Cell is a remotely addressable 64-bit integer cell, used for the
// per-stripe overflow counter (spec.md §3's overflow_count).
type Uint64Cell struct {
	v atomic.Uint64
}

// RemoteCellArray is a remotely addressable array of Uint32Cells — the
// simulated equivalent of a global_ptr<int> pointing at a whole stripe's
// used-flags (spec.md §3's used[0..B)). Unlike RemoteArray[T], it hands out
// pointers into its own backing slice rather than copying values in and
// out, because every access to a cell must go through sync/atomic on that
// exact memory address to be race-free.
type RemoteCellArray struct {
	owner int
	cells []Uint32Cell
}

// NewRemoteCellArray allocates n zero-initialized cells attributed to
// owner.
func NewRemoteCellArray(owner int, n int) *RemoteCellArray {
	return &RemoteCellArray{owner: owner, cells: make([]Uint32Cell, n)}
}

// Owner returns the rank this array's memory is attributed to.
func (a *RemoteCellArray) Owner() int {
	return a.owner
}

// At returns a pointer to the cell at index i, usable as the target of
// AtomicDomain.CompareExchange/Load from any rank's goroutine.
func (a *RemoteCellArray) At(i int) *Uint32Cell {
	return &a.cells[i]
}

// Len returns the array's length.
func (a *RemoteCellArray) Len() int {
	return len(a.cells)
}

// RemoteCounter is a single remotely addressable Uint64Cell — the simulated
// equivalent of the global_ptr<int> backing one stripe's overflow_count.
type RemoteCounter struct {
	owner int
	cell  Uint64Cell
}

// NewRemoteCounter allocates a zero-initialized counter attributed to
// owner.
func NewRemoteCounter(owner int) *RemoteCounter {
	return &RemoteCounter{owner: owner}
}

// Cell returns a pointer to the underlying counter cell, usable as the
// target of AtomicDomain.FetchAdd/LoadUint64 from any rank's goroutine.
func (c *RemoteCounter) Cell() *Uint64Cell {
	return &c.cell
}

// Owner returns the rank this counter is attributed to.
func (c *RemoteCounter) Owner() int {
	return c.owner
}

// AtomicDomain is the single remote atomic domain shared by every cell this
// table touches, mirroring the one upcxx::atomic_domain<int> the original
// runtime constructs with a single compare_exchange op declared
// (spec.md §9, "Single atomic domain"). It supports exactly the two
// operations spec.md §6 requires of the runtime: compare_exchange and
// fetch_add, both with release ordering.
type AtomicDomain struct{}

// NewAtomicDomain returns the shared atomic domain used for every CAS on a
// used-flag cell and every fetch-add on an overflow counter in a table.
func NewAtomicDomain() *AtomicDomain {
	return &AtomicDomain{}
}

// CompareExchange atomically sets cell to desired if its current value is
// expected, and reports whether the swap happened. It is used for both the
// local and the remote slot-claim path (see DESIGN.md for why this module
// does not give the local path a separate non-atomic implementation).
func (d *AtomicDomain) CompareExchange(cell *Uint32Cell, expected, desired uint32) bool {
	return cell.v.CompareAndSwap(expected, desired)
}

// Load reads a cell's current value with acquire semantics.
func (d *AtomicDomain) Load(cell *Uint32Cell) uint32 {
	return cell.v.Load()
}

// FetchAdd atomically adds delta to cell and returns the value cell held
// before the add — the reservation offset spec.md §4.4 requires
// ("offset ← fetch_add(overflow_count@t, len)").
func (d *AtomicDomain) FetchAdd(cell *Uint64Cell, delta uint64) uint64 {
	return cell.v.Add(delta) - delta
}

// LoadUint64 reads a counter cell's current value.
func (d *AtomicDomain) LoadUint64(cell *Uint64Cell) uint64 {
	return cell.v.Load()
}
