package kmerhash

// nodeOf returns the rank that owns logical slot s, given a per-stripe
// width b (spec.md §4.1: node(s) = s / B).
func nodeOf(s, b uint64) int {
	return int(s / b)
}

// offsetOf returns slot s's offset within its owning rank's stripe
// (spec.md §4.1: offset(s) = s % B).
func offsetOf(s, b uint64) int {
	return int(s % b)
}

// probe walks the canonical probe sequence (hash+p) mod n for p in [0, n),
// calling visit for each slot in order and stopping as soon as visit
// reports true. It returns whether any call to visit succeeded; false
// means the full ring was walked without success. Insert and Find share
// this sequence (spec.md §4.3, §4.6) so that a key's probe path is defined
// identically in both directions.
func probe(hash, n uint64, visit func(slot uint64) bool) bool {
	for p := uint64(0); p < n; p++ {
		s := (hash + p) % n
		if visit(s) {
			return true
		}
	}
	return false
}
