package packedbits

// IsAll reports whether every addressable bit is on.
// An empty set is vacuously all-on.
func (b *BitSet) IsAll() bool {
	n := len(b.blocks)
	if n == 0 {
		return true
	}
	for _, w := range b.blocks[:n-1] {
		if w != allOn {
			return false
		}
	}
	mask := tailMask(b.size)
	return b.blocks[n-1]&mask == mask
}

// Any reports whether at least one bit is on
func (b *BitSet) Any() bool {
	for _, w := range b.blocks {
		if w != 0 {
			return true
		}
	}
	return false
}

// None reports whether no bit is on
func (b *BitSet) None() bool {
	return !b.Any()
}

// Uniform reports whether the set has at least two bits and all of them
// hold the same value.
func (b *BitSet) Uniform() bool {
	if b.size < 2 {
		return false
	}
	if b.get(0) {
		return b.IsAll()
	}
	return b.None()
}

// Count returns the number of on-bits
func (b *BitSet) Count() int {
	return b.count()
}

// Toc returns the positions of the on-bits in ascending order
func (b *BitSet) Toc() []int {
	out := make([]int, 0, b.count())
	for pos := b.nextSet(0); pos >= 0; pos = b.nextSet(pos + 1) {
		out = append(out, pos)
	}
	return out
}

// SortedToc is the same as Toc, which is already ascending
func (b *BitSet) SortedToc() []int {
	return b.Toc()
}

// Values expands the set into one bool per addressable bit
func (b *BitSet) Values() []bool {
	out := make([]bool, b.size)
	for pos := b.nextSet(0); pos >= 0; pos = b.nextSet(pos + 1) {
		out[pos] = true
	}
	return out
}
