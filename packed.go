package packedbits

import (
	"math"
	"math/bits"
)

const (
	blockBits = 64
	blockMask = blockBits - 1
	allOn     = ^uint64(0)

	// maxSize is the largest size whose block count does not overflow int
	maxSize = math.MaxInt - blockMask
)

// packed is the word-packed storage behind a BitSet.
// len(blocks) is always numBlocks(size). Bits at positions >= size are
// kept zero, including blocks between len and cap of the slice, so that
// whole-block scans never see stale data.
type packed struct {
	blocks []uint64
	size   int
}

func numBlocks(nbits int) int {
	return (nbits + blockMask) / blockBits
}

// locate maps a logical position onto its block and in-block bit.
func locate(pos int) (int, uint) {
	return pos / blockBits, uint(pos & blockMask)
}

// tailMask returns the mask of valid bits in the last block of a set
// holding nbits bits.
func tailMask(nbits int) uint64 {
	off := uint(nbits & blockMask)
	if off == 0 {
		return allOn
	}
	return allOn >> (blockBits - off)
}

func (p *packed) capacityBits() int {
	return cap(p.blocks) * blockBits
}

// resize changes the logical size. New bits are zero.
func (p *packed) resize(n int) {
	if n < 0 {
		n = 0
	}
	if n == p.size {
		return
	}
	need := numBlocks(n)
	if n < p.size {
		old := len(p.blocks)
		p.blocks = p.blocks[:need]
		clear(p.blocks[need:old:old])
		if need > 0 {
			p.blocks[need-1] &= tailMask(n)
		}
		p.size = n
		return
	}
	if need > cap(p.blocks) {
		newCap := 2 * cap(p.blocks)
		if newCap < need {
			newCap = need
		}
		grown := make([]uint64, need, newCap)
		copy(grown, p.blocks)
		p.blocks = grown
	} else {
		old := len(p.blocks)
		p.blocks = p.blocks[:need]
		clear(p.blocks[old:need])
	}
	p.size = n
}

// resizeExact grows like resize but allocates exactly the blocks needed.
// Used by constructors that know the final size up front.
func (p *packed) resizeExact(n int) {
	if need := numBlocks(n); need > cap(p.blocks) {
		grown := make([]uint64, len(p.blocks), need)
		copy(grown, p.blocks)
		p.blocks = grown
	}
	p.resize(n)
}

func (p *packed) get(pos int) bool {
	if pos < 0 || pos >= p.size {
		return false
	}
	bi, off := locate(pos)
	return p.blocks[bi]&(1<<off) != 0
}

// set turns a bit on, auto-vivifying when pos is beyond the size.
func (p *packed) set(pos int) {
	if pos < 0 {
		return
	}
	if pos >= p.size {
		p.resize(pos + 1)
	}
	bi, off := locate(pos)
	p.blocks[bi] |= 1 << off
}

func (p *packed) unset(pos int) {
	if pos < 0 || pos >= p.size {
		return
	}
	bi, off := locate(pos)
	p.blocks[bi] &^= 1 << off
}

func (p *packed) flip(pos int) {
	if pos < 0 || pos >= p.size {
		return
	}
	bi, off := locate(pos)
	p.blocks[bi] ^= 1 << off
}

// fillRange sets or clears [from, to). The caller guarantees
// 0 <= from <= to <= size.
func (p *packed) fillRange(from, to int, on bool) {
	if from >= to {
		return
	}
	fb, fo := locate(from)
	lb, lo := locate(to - 1)
	head := allOn << fo
	tail := allOn >> (blockMask - lo)

	if fb == lb {
		p.apply(fb, head&tail, on)
		return
	}
	p.apply(fb, head, on)
	var fill uint64
	if on {
		fill = allOn
	}
	for i := fb + 1; i < lb; i++ {
		p.blocks[i] = fill
	}
	p.apply(lb, tail, on)
}

func (p *packed) apply(bi int, mask uint64, on bool) {
	if on {
		p.blocks[bi] |= mask
	} else {
		p.blocks[bi] &^= mask
	}
}

// clearTail zeroes the bits beyond size in the last block.
func (p *packed) clearTail() {
	if n := len(p.blocks); n > 0 {
		p.blocks[n-1] &= tailMask(p.size)
	}
}

func (p *packed) count() int {
	n := len(p.blocks)
	if n == 0 {
		return 0
	}
	total := 0
	for _, w := range p.blocks[:n-1] {
		total += bits.OnesCount64(w)
	}
	return total + bits.OnesCount64(p.blocks[n-1]&tailMask(p.size))
}

// nextSet returns the first on-bit at or after from, or -1.
func (p *packed) nextSet(from int) int {
	if from < 0 {
		from = 0
	}
	if from >= p.size {
		return -1
	}
	bi, off := locate(from)
	if w := p.blocks[bi] >> off; w != 0 {
		return from + bits.TrailingZeros64(w)
	}
	for bi++; bi < len(p.blocks); bi++ {
		if w := p.blocks[bi]; w != 0 {
			return bi*blockBits + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// prevSet returns the last on-bit in the set, or -1.
func (p *packed) prevSet() int {
	for bi := len(p.blocks) - 1; bi >= 0; bi-- {
		if w := p.blocks[bi]; w != 0 {
			return bi*blockBits + blockMask - bits.LeadingZeros64(w)
		}
	}
	return -1
}
