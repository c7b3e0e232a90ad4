/*
Package packedbits implements a dynamic, word-packed bit-set.

A BitSet is a growable sequence of boolean flags stored 64 to a block.
Writes beyond the current length grow the set ("auto-vivify"), reads
beyond it return false, and the set-algebra operators accept operands of
different lengths. Iteration visits only the on-bits and skips whole
zero blocks.

A BitSet is not safe for concurrent mutation. Concurrent readers are fine.
*/
package packedbits

// BitSet is a dynamically sized set of bits.
// The zero value is an empty set ready to use.
type BitSet struct {
	packed
}

// New creates an empty BitSet
func New() *BitSet {
	return &BitSet{}
}

// NewSize creates a BitSet of _n_ bits, all off
func NewSize(n int) *BitSet {
	b := &BitSet{}
	b.resizeExact(n)
	return b
}

// NewFilled creates a BitSet of _n_ bits, all set to _val_
func NewFilled(n int, val bool) *BitSet {
	b := NewSize(n)
	if val {
		b.fillRange(0, b.size, true)
	}
	return b
}

// FromBools creates a BitSet with one bit per entry of _bools_
func FromBools(bools []bool) *BitSet {
	b := NewSize(len(bools))
	for i, v := range bools {
		if v {
			bi, off := locate(i)
			b.blocks[bi] |= 1 << off
		}
	}
	return b
}

// FromIndices creates a BitSet with the listed positions on.
// The size is the largest position plus one.
func FromIndices(locations []int) *BitSet {
	return FromIndicesSize(0, locations)
}

// FromIndicesSize creates a BitSet of _n_ bits with the listed positions on.
// The set grows if a position lies beyond _n_.
func FromIndicesSize(n int, locations []int) *BitSet {
	size := n
	for _, pos := range locations {
		if pos >= size {
			size = pos + 1
		}
	}
	b := NewSize(n)
	b.resizeExact(size)
	b.SetMany(locations)
	return b
}

// Clone returns an independent copy of the set
func (b *BitSet) Clone() *BitSet {
	c := &BitSet{}
	c.size = b.size
	c.blocks = make([]uint64, len(b.blocks))
	copy(c.blocks, b.blocks)
	return c
}

// Len returns the number of addressable bits
func (b *BitSet) Len() int {
	return b.size
}

// Capacity returns the number of bits the storage holds without reallocating
func (b *BitSet) Capacity() int {
	return b.capacityBits()
}

// Empty reports whether the set has no addressable bits
func (b *BitSet) Empty() bool {
	return b.size == 0
}

// Test reports whether the bit at _pos_ is on.
// Positions outside [0, Len()) read as off.
func (b *BitSet) Test(pos int) bool {
	return b.get(pos)
}

// Get returns the bit at _pos_ as 0 or 1
func (b *BitSet) Get(pos int) uint {
	if b.get(pos) {
		return 1
	}
	return 0
}

// Set turns on the bit at _pos_, growing the set when needed
func (b *BitSet) Set(pos int) *BitSet {
	b.set(pos)
	return b
}

// SetValue assigns _val_ at _pos_ and reports whether the bit changed.
// Turning a bit on auto-vivifies; turning it off never grows the set.
func (b *BitSet) SetValue(pos int, val bool) bool {
	if pos < 0 {
		return false
	}
	old := b.get(pos)
	if old == val {
		return false
	}
	if val {
		b.set(pos)
	} else {
		b.unset(pos)
	}
	return true
}

// Unset turns off the bit at _pos_. A no-op outside [0, Len()).
func (b *BitSet) Unset(pos int) *BitSet {
	b.unset(pos)
	return b
}

// FlipAt inverts the bit at _pos_. A no-op outside [0, Len()).
func (b *BitSet) FlipAt(pos int) {
	b.flip(pos)
}

// SetRange turns on every bit in [from, to), growing the set to _to_
// when needed. Negative _from_ is clamped to zero.
func (b *BitSet) SetRange(from, to int) {
	if from < 0 {
		from = 0
	}
	if from >= to {
		return
	}
	if to > b.size {
		b.resize(to)
	}
	b.fillRange(from, to, true)
}

// UnsetRange turns off every bit in [from, to) that lies inside the set.
// It never grows the set.
func (b *BitSet) UnsetRange(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > b.size {
		to = b.size
	}
	b.fillRange(from, to, false)
}

// SetMany turns on the listed positions, growing the set when needed
func (b *BitSet) SetMany(locations []int) {
	for _, pos := range locations {
		b.set(pos)
	}
}

// UnsetMany turns off the listed positions, never growing the set
func (b *BitSet) UnsetMany(locations []int) {
	for _, pos := range locations {
		b.unset(pos)
	}
}

// Assign sets every addressable bit to _val_
func (b *BitSet) Assign(val bool) {
	if val {
		b.fillRange(0, b.size, true)
	} else {
		clear(b.blocks)
	}
}

// AssignBools replaces the contents with one bit per entry of _bools_
func (b *BitSet) AssignBools(bools []bool) {
	b.Clear()
	b.resize(len(bools))
	for i, v := range bools {
		if v {
			bi, off := locate(i)
			b.blocks[bi] |= 1 << off
		}
	}
}

// Resize changes the number of addressable bits. New bits are off and
// bits beyond a reduced size are discarded.
func (b *BitSet) Resize(n int) {
	b.resize(n)
}

// Bound caps the size at _limit_. Either shrinks the set or is a no-op.
func (b *BitSet) Bound(limit int) *BitSet {
	if limit < b.size {
		b.resize(limit)
	}
	return b
}

// BoundTo caps the size at the size of _other_
func (b *BitSet) BoundTo(other *BitSet) *BitSet {
	return b.Bound(other.size)
}

// Extend grows the set to cover _minSize_ bits. Either grows or is a no-op.
func (b *BitSet) Extend(minSize int) *BitSet {
	if minSize > b.size {
		b.resize(minSize)
	}
	return b
}

// ExtendTo grows the set to cover the addressable range of _other_
func (b *BitSet) ExtendTo(other *BitSet) *BitSet {
	return b.Extend(other.size)
}

// Clear empties the set but keeps its storage for reuse
func (b *BitSet) Clear() {
	b.resize(0)
}

// ClearStorage empties the set and releases its storage
func (b *BitSet) ClearStorage() {
	b.blocks = nil
	b.size = 0
}

// Swap exchanges the contents of two sets without copying bits
func (b *BitSet) Swap(other *BitSet) {
	if b == other {
		return
	}
	b.packed, other.packed = other.packed, b.packed
}

// Transfer moves the contents of _other_ into b, leaving _other_ empty
// with no storage.
func (b *BitSet) Transfer(other *BitSet) {
	if b == other {
		return
	}
	b.packed = other.packed
	other.packed = packed{}
}

// Equal reports whether both sets have the same size and the same bits
func (b *BitSet) Equal(other *BitSet) bool {
	if b.size != other.size {
		return false
	}
	for i, w := range b.blocks {
		if w != other.blocks[i] {
			return false
		}
	}
	return true
}
