package packedbits

import "iter"

// Iterator walks the on-bits of a BitSet in ascending order.
// Any mutation of the set invalidates it.
type Iterator struct {
	set *BitSet
	pos int
}

// Iterator returns an iterator positioned before the first on-bit
func (b *BitSet) Iterator() *Iterator {
	return &Iterator{set: b, pos: -1}
}

// Next advances to the next on-bit and returns its position.
// The second result is false once the set is exhausted.
func (it *Iterator) Next() (int, bool) {
	if it.pos == -2 {
		return -1, false
	}
	next := it.set.nextSet(it.pos + 1)
	if next < 0 {
		it.pos = -2
		return -1, false
	}
	it.pos = next
	return next, true
}

// All returns a sequence over the positions of the on-bits, ascending
//
//	for pos := range set.All() {
//		...
//	}
func (b *BitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for pos := b.nextSet(0); pos >= 0; pos = b.nextSet(pos + 1) {
			if !yield(pos) {
				return
			}
		}
	}
}

// FindFirst returns the position of the first on-bit, or -1
func (b *BitSet) FindFirst() int {
	return b.nextSet(0)
}

// FindLast returns the position of the last on-bit, or -1
func (b *BitSet) FindLast() int {
	return b.prevSet()
}

// FindNext returns the position of the first on-bit after _pos_, or -1.
// FindNext(-1) is the same as FindFirst.
func (b *BitSet) FindNext(pos int) int {
	if pos < -1 {
		pos = -1
	}
	return b.nextSet(pos + 1)
}
