// Package kmer provides the reference Record implementation this project's
// benchmark and tests build tables out of: fixed-length DNA k-mers packed
// into two uint64s, paired with the single forward extension base a de
// Bruijn graph assembler threads from slot to slot.
package kmer

import (
	"fmt"

	"github.com/Chazzzzzzz/cs267-hw3"
	"github.com/cespare/xxhash/v2"
)

// MaxLength is the longest k-mer this package can pack into its two-word
// representation: 64 bases at 2 bits/base split across two uint64s.
const MaxLength = 64

// KMer is a packed, fixed-length sequence of up to MaxLength DNA bases (A,
// C, G, T), 2 bits per base, the simulated equivalent of the original
// runtime's pkmer_t. Two KMers with the same Length and the same packed
// bits represent the same sequence.
type KMer struct {
	length int
	lo     uint64
	hi     uint64
}

// New packs seq (a string over {A,C,G,T}) into a KMer. It panics if seq is
// longer than MaxLength or contains a base other than A, C, G or T, since a
// malformed k-mer has no valid packed representation to fall back to.
func New(seq string) KMer {
	if len(seq) > MaxLength {
		panic(fmt.Sprintf("kmer: sequence length %d exceeds max %d", len(seq), MaxLength))
	}
	k := KMer{length: len(seq)}
	for i := 0; i < len(seq); i++ {
		code, ok := baseCode(seq[i])
		if !ok {
			panic(fmt.Sprintf("kmer: invalid base %q at position %d", seq[i], i))
		}
		k.shiftIn(code)
	}
	return k
}

func (k *KMer) shiftIn(code uint64) {
	k.hi = (k.hi << 2) | (k.lo >> 62)
	k.lo = (k.lo << 2) | code
}

func baseCode(b byte) (uint64, bool) {
	switch b {
	case 'A':
		return 0, true
	case 'C':
		return 1, true
	case 'G':
		return 2, true
	case 'T':
		return 3, true
	default:
		return 0, false
	}
}

func codeBase(c uint64) byte {
	switch c {
	case 0:
		return 'A'
	case 1:
		return 'C'
	case 2:
		return 'G'
	default:
		return 'T'
	}
}

// Length returns the number of bases packed into k.
func (k KMer) Length() int {
	return k.length
}

// String unpacks k back into its base sequence.
func (k KMer) String() string {
	buf := make([]byte, k.length)
	lo, hi := k.lo, k.hi
	for i := k.length - 1; i >= 0; i-- {
		buf[i] = codeBase(lo & 3)
		lo = (lo >> 2) | (hi << 62)
		hi >>= 2
	}
	return string(buf)
}

// Equal reports whether k and other pack the same sequence.
func (k KMer) Equal(other KMer) bool {
	return k.length == other.length && k.lo == other.lo && k.hi == other.hi
}

// Hash returns k's table hash, computed over its packed representation with
// xxhash so that two equal k-mers always hash identically regardless of how
// they were constructed.
func (k KMer) Hash() uint64 {
	var buf [17]byte
	buf[0] = byte(k.length)
	putUint64(buf[1:9], k.lo)
	putUint64(buf[9:17], k.hi)
	return xxhash.Sum64(buf[:])
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// ForwardExtension returns the k-mer that follows k when extended by ext:
// ext is appended at the low end and k's highest base is dropped, the step
// a de Bruijn graph walk performs to move from one k-mer to the next. It
// reports false if ext is not A, C, G or T. lo and
// hi are masked separately rather than through one shared mask, since for
// lengths over 32 the two words hold different numbers of valid bits.
func (k KMer) ForwardExtension(ext byte) (KMer, bool) {
	code, ok := baseCode(ext)
	if !ok {
		return KMer{}, false
	}
	carry := k.lo >> 62
	next := KMer{length: k.length, lo: (k.lo << 2) | code, hi: (k.hi << 2) | carry}
	switch {
	case k.length < 32:
		next.lo &= uint64(1)<<(2*uint(k.length)) - 1
		next.hi = 0
	case k.length == 32:
		next.hi = 0
	case k.length < 64:
		next.hi &= uint64(1)<<(2*uint(k.length)-64) - 1
	}
	return next, true
}

// Pair is the reference Record: a k-mer together with the single base that
// extends the contig forward from it (spec.md's domain payload, the
// simulated equivalent of kmer_pair). Its Hash and SameKey implement
// kmerhash.Record, keyed only on the k-mer itself — the forward base is
// payload, not part of the key.
type Pair struct {
	KMer      KMer
	ForwardBA byte // 'A', 'C', 'G', 'T', or 'F' for a contig's final k-mer
}

// NewPair builds a Pair from a sequence and its single-character forward
// extension marker.
func NewPair(seq string, forward byte) Pair {
	return Pair{KMer: New(seq), ForwardBA: forward}
}

// Hash implements kmerhash.Record.
func (p Pair) Hash() uint64 {
	return p.KMer.Hash()
}

// SameKey implements kmerhash.Record, comparing only the k-mer, never the
// forward-extension payload: two pairs with the same k-mer and different
// forward bases are a construction error in the caller's k-mer graph, not a
// case this method needs to distinguish.
func (p Pair) SameKey(other kmerhash.Record) bool {
	o, ok := other.(Pair)
	return ok && p.KMer.Equal(o.KMer)
}
