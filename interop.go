package packedbits

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// ToBitsAndBlooms copies b into a bits-and-blooms bitset of the same length
func (b *BitSet) ToBitsAndBlooms() *bitset.BitSet {
	out := bitset.New(uint(b.size))
	for pos := b.nextSet(0); pos >= 0; pos = b.nextSet(pos + 1) {
		out.Set(uint(pos))
	}
	return out
}

// FromBitsAndBlooms copies a bits-and-blooms bitset. The size is src.Len().
func FromBitsAndBlooms(src *bitset.BitSet) *BitSet {
	b := NewSize(int(src.Len()))
	for i, ok := src.NextSet(0); ok; i, ok = src.NextSet(i + 1) {
		b.set(int(i))
	}
	return b
}

// ToRoaring copies the on-bits of b into a roaring bitmap.
// It fails with ErrIndexOutOfRange when an on-bit lies beyond the uint32 range.
func (b *BitSet) ToRoaring() (*roaring.Bitmap, error) {
	if err := checkRoaringPos(b.prevSet()); err != nil {
		return nil, err
	}
	rb := roaring.New()
	for pos := b.nextSet(0); pos >= 0; pos = b.nextSet(pos + 1) {
		rb.Add(uint32(pos))
	}
	return rb, nil
}

func checkRoaringPos(last int) error {
	if int64(last) > math.MaxUint32 {
		return fmt.Errorf("%w: position %d does not fit a roaring bitmap", ErrIndexOutOfRange, last)
	}
	return nil
}

// FromRoaring builds a BitSet holding the members of _rb_.
// The result has _size_ bits, extended if a member lies beyond it.
func FromRoaring(rb *roaring.Bitmap, size int) *BitSet {
	if !rb.IsEmpty() {
		if last := int(rb.Maximum()) + 1; last > size {
			size = last
		}
	}
	b := NewSize(size)
	it := rb.Iterator()
	for it.HasNext() {
		b.set(int(it.Next()))
	}
	return b
}
