package kmerhash

// Record is the opaque, fixed-width value a table stores. The k-mer record
// type itself — its fields, its encoding, its hash function's exact
// algorithm — is an external collaborator this package does not define
// (see the kmer package for a reference implementation); a table only ever
// needs a canonical hash and key equality.
type Record interface {
	// Hash returns the canonical hash of this record's key. The table
	// probes slots starting at Hash() mod N; two records with the same key
	// must return the same Hash.
	Hash() uint64
	// SameKey reports whether other carries the same key as this record,
	// independent of any other fields the concrete Record type carries.
	SameKey(other Record) bool
}
