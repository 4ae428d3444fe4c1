// Package pgas simulates the partitioned-global-address-space runtime that
// the hash table in the parent package is written against: rank identity,
// collective broadcast and barrier, one-sided remote get/put, and a shared
// remote atomic domain supporting compare-and-swap and fetch-add.
//
// A real PGAS runtime (UPC++, GASNet, OpenSHMEM) spreads these operations
// across independent OS processes connected by an RDMA-capable network. This
// package plays the same role inside a single Go process: a Team is a
// collective group of ranks realized as goroutines, and RemoteArray,
// RemoteCellArray and RemoteCounter are the only places a rank's memory is
// exposed to the others. Nothing outside this
// package touches another rank's slice directly, and nothing outside this
// package imports sync/atomic — that boundary is what makes the rest of the
// module's "local vs. remote" distinction meaningful.
package pgas
