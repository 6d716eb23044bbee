// Package bitvector provides a bit sequence backed by an extent of machine
// words, supporting pointwise read/set/clear and the four rank/select
// queries the rest of this module's succinct encodings are built on.
package bitvector

import (
	"math/bits"

	"github.com/SeleniaProject/succinct/errs"
	"github.com/SeleniaProject/succinct/extent"
	"github.com/SeleniaProject/succinct/memview"
)

// wordBits is the bit width W of the word type. The reference
// implementation this package is grounded on used sizeof(Word) (the byte
// count) in its select_0/select_1 whole-word shortcut, which only agrees
// with the bit count for a single-byte word type; using the byte count
// with a wider word breaks rank(select(i)) == i. This package uses the bit
// count throughout, closing that gap.
const wordBits = 64

// Bitvector is a sequence of n bits packed into an extent of uint64 words,
// with n stored as the extent's metadata (distinct from the word capacity).
type Bitvector struct {
	words *extent.Extent[uint64, int64]
}

// New constructs a bitvector of the given bit length, all bits cleared.
func New(alloc memview.Allocator, size int64) (*Bitvector, error) {
	bv := &Bitvector{words: extent.New[uint64, int64](alloc, nil)}

	if size == 0 {
		return bv, nil
	}

	nWords := (size + wordBits - 1) / wordBits
	if err := bv.words.Reserve(nWords); err != nil {
		return nil, err
	}

	*bv.words.Metadata() = size

	for i := int64(0); i < nWords; i++ {
		if _, err := bv.words.PushBack(0); err != nil {
			return nil, err
		}
	}

	return bv, nil
}

// Init is reserved for precomputed rank/select auxiliaries; it is a no-op
// in this implementation, and every navigation and rank/select method
// below is correct whether or not Init has ever been called.
func (bv *Bitvector) Init() {}

// Size returns the number of bits, 0 for an empty bitvector.
func (bv *Bitvector) Size() int64 {
	if bv.words.Cap() == 0 {
		return 0
	}

	return *bv.words.Metadata()
}

func (bv *Bitvector) word(i int64) uint64 { return bv.words.At(i / wordBits) }

// Bitread returns bit i.
func (bv *Bitvector) Bitread(i int64) bool {
	errs.Check(i >= 0 && i < bv.Size(), "Bitvector.Bitread", "index out of range")

	return (bv.word(i)>>(uint(i)%wordBits))&1 != 0
}

// Bitset sets bit i to 1.
func (bv *Bitvector) Bitset(i int64) {
	errs.Check(i >= 0 && i < bv.Size(), "Bitvector.Bitset", "index out of range")

	w := bv.words.At(i / wordBits)
	bv.words.SetAt(i/wordBits, w|(uint64(1)<<(uint(i)%wordBits)))
}

// Bitclear sets bit i to 0.
func (bv *Bitvector) Bitclear(i int64) {
	errs.Check(i >= 0 && i < bv.Size(), "Bitvector.Bitclear", "index out of range")

	w := bv.words.At(i / wordBits)
	bv.words.SetAt(i/wordBits, w&^(uint64(1)<<(uint(i)%wordBits)))
}

// Rank1 returns the number of 1 bits in [0, i).
func (bv *Bitvector) Rank1(i int64) int64 {
	quot, rem := i/wordBits, i%wordBits

	var ret int64

	var j int64
	for j != quot {
		ret += int64(bits.OnesCount64(bv.words.At(j)))
		j++
	}

	if rem != 0 {
		mask := (uint64(1) << uint(rem)) - 1
		ret += int64(bits.OnesCount64(bv.words.At(j) & mask))
	}

	return ret
}

// Rank0 returns the number of 0 bits in [0, i).
func (bv *Bitvector) Rank0(i int64) int64 {
	return i - bv.Rank1(i)
}

// Select1 returns the position of the i-th 1 bit (0-indexed), or Size() if
// no such bit exists.
func (bv *Bitvector) Select1(i int64) int64 {
	size := bv.Size()
	if i >= size {
		return size
	}

	quot := i / wordBits

	var ret, j int64

	for j != quot {
		next := int64(bits.OnesCount64(bv.words.At(j)))
		if ret+next > i {
			break
		}

		ret += next
		j++
	}

	j *= wordBits

	for j != size {
		if bv.Bitread(j) {
			ret++
		}

		if ret > i {
			return j
		}

		j++
	}

	return j
}

// Select0 returns the position of the i-th 0 bit (0-indexed), or Size() if
// no such bit exists.
func (bv *Bitvector) Select0(i int64) int64 {
	size := bv.Size()
	if i >= size {
		return size
	}

	quot := i / wordBits

	var ret, j int64

	for j != quot {
		next := wordBits - int64(bits.OnesCount64(bv.words.At(j)))
		if ret+next > i {
			break
		}

		ret += next
		j++
	}

	j *= wordBits

	for j != size {
		if !bv.Bitread(j) {
			ret++
		}

		if ret > i {
			return j
		}

		j++
	}

	return j
}

// Succ0 returns select_0(rank_0(i)).
func (bv *Bitvector) Succ0(i int64) int64 { return bv.Select0(bv.Rank0(i)) }

// Succ1 returns select_1(rank_1(i)).
func (bv *Bitvector) Succ1(i int64) int64 { return bv.Select1(bv.Rank1(i)) }

// Pred0 returns select_0(rank_0(i+1) - 1).
func (bv *Bitvector) Pred0(i int64) int64 { return bv.Select0(bv.Rank0(i+1) - 1) }

// Pred1 returns select_1(rank_1(i+1) - 1).
func (bv *Bitvector) Pred1(i int64) int64 { return bv.Select1(bv.Rank1(i+1) - 1) }
