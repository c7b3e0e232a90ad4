package packedbits

// GrowthPolicy selects whether OR and XOR may grow the receiver.
type GrowthPolicy int

const (
	// Bounded keeps the receiver's size; bits of the operand beyond it
	// are discarded.
	Bounded GrowthPolicy = iota
	// Extend grows the receiver to the operand's size before combining.
	Extend
)

func (p GrowthPolicy) String() string {
	switch p {
	case Bounded:
		return "bounded"
	case Extend:
		return "extend"
	default:
		return "unknown"
	}
}

func overlap(a, b *BitSet) int {
	return min(len(a.blocks), len(b.blocks))
}

// AndEq keeps only the bits that are on in both sets.
// Bits beyond the size of _other_ are cleared; the size of b never changes.
func (b *BitSet) AndEq(other *BitSet) *BitSet {
	if b == other {
		return b
	}
	n := overlap(b, other)
	for i := 0; i < n; i++ {
		b.blocks[i] &= other.blocks[i]
	}
	clear(b.blocks[n:])
	return b
}

// OrEq turns on the bits of _other_. With Bounded the size of b is kept;
// with Extend b first grows to the size of _other_.
func (b *BitSet) OrEq(other *BitSet, policy GrowthPolicy) *BitSet {
	if b == other {
		return b
	}
	if policy == Extend && other.size > b.size {
		b.resize(other.size)
	}
	n := overlap(b, other)
	for i := 0; i < n; i++ {
		b.blocks[i] |= other.blocks[i]
	}
	b.clearTail()
	return b
}

// XorEq toggles the bits that are on in _other_. Sizing follows OrEq.
func (b *BitSet) XorEq(other *BitSet, policy GrowthPolicy) *BitSet {
	if b == other {
		clear(b.blocks)
		return b
	}
	if policy == Extend && other.size > b.size {
		b.resize(other.size)
	}
	n := overlap(b, other)
	for i := 0; i < n; i++ {
		b.blocks[i] ^= other.blocks[i]
	}
	b.clearTail()
	return b
}

// MinusEq turns off the bits that are on in _other_ (A & ~B).
// The size of b never changes.
func (b *BitSet) MinusEq(other *BitSet) *BitSet {
	if b == other {
		clear(b.blocks)
		return b
	}
	n := overlap(b, other)
	for i := 0; i < n; i++ {
		b.blocks[i] &^= other.blocks[i]
	}
	return b
}

// SetFrom turns on every bit of _other_, growing b as needed
func (b *BitSet) SetFrom(other *BitSet) *BitSet {
	return b.OrEq(other, Extend)
}

// UnsetFrom turns off every bit of _other_. Same as MinusEq.
func (b *BitSet) UnsetFrom(other *BitSet) *BitSet {
	return b.MinusEq(other)
}

// Intersects reports whether any bit is on in both sets
func (b *BitSet) Intersects(other *BitSet) bool {
	n := overlap(b, other)
	for i := 0; i < n; i++ {
		if b.blocks[i]&other.blocks[i] != 0 {
			return true
		}
	}
	return false
}

// Flip inverts every addressable bit
func (b *BitSet) Flip() {
	for i := range b.blocks {
		b.blocks[i] = ^b.blocks[i]
	}
	b.clearTail()
}

// Not returns the complement of b within its size
func (b *BitSet) Not() *BitSet {
	c := b.Clone()
	c.Flip()
	return c
}

// And returns a new set holding a & b, sized as _a_
func And(a, b *BitSet) *BitSet {
	return a.Clone().AndEq(b)
}

// Or returns a new set holding a | b, sized to cover both operands
func Or(a, b *BitSet) *BitSet {
	return a.Clone().OrEq(b, Extend)
}

// Xor returns a new set holding a ^ b, sized to cover both operands
func Xor(a, b *BitSet) *BitSet {
	return a.Clone().XorEq(b, Extend)
}

// Minus returns a new set holding a & ~b, sized as _a_
func Minus(a, b *BitSet) *BitSet {
	return a.Clone().MinusEq(b)
}
