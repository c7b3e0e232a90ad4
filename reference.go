package packedbits

// Reference is a writable handle to a single bit of a BitSet.
// It addresses the owning block directly, so any resize of the owner
// invalidates it.
type Reference struct {
	block *uint64
	mask  uint64
}

// Ref returns a writable reference to the bit at _pos_.
// It never grows the set: positions outside [0, Len()) yield an *IndexError.
// Use Set or Extend first when the set has to grow.
func (b *BitSet) Ref(pos int) (Reference, error) {
	if pos < 0 || pos >= b.size {
		return Reference{}, &IndexError{Index: pos, Size: b.size}
	}
	bi, off := locate(pos)
	return Reference{block: &b.blocks[bi], mask: 1 << off}, nil
}

// At is like Ref but panics on an out-of-range position
func (b *BitSet) At(pos int) Reference {
	ref, err := b.Ref(pos)
	if err != nil {
		panic(err)
	}
	return ref
}

// Get reports whether the referenced bit is on
func (r Reference) Get() bool {
	return *r.block&r.mask != 0
}

// Value returns the bit as 0 or 1
func (r Reference) Value() uint {
	if r.Get() {
		return 1
	}
	return 0
}

// Set turns the referenced bit on or off according to _val_
func (r Reference) Set(val bool) {
	if val {
		*r.block |= r.mask
	} else {
		*r.block &^= r.mask
	}
}

// SetValue assigns 1 for any non-zero _val_, otherwise 0
func (r Reference) SetValue(val uint) {
	r.Set(val != 0)
}

// Assign copies the bit addressed by _other_
func (r Reference) Assign(other Reference) {
	r.Set(other.Get())
}

// Flip inverts the referenced bit
func (r Reference) Flip() {
	*r.block ^= r.mask
}
