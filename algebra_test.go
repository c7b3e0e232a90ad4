package packedbits

import "testing"

func TestAndEqDifferentSizes(t *testing.T) {
	a := FromIndicesSize(5, []int{0, 1, 3, 4})
	b := FromIndicesSize(3, []int{0, 2})
	a.AndEq(b)
	if a.Len() != 5 {
		t.Fatalf("AndEq should keep the receiver size 5, got %v", a.Len())
	}
	if got := a.Toc(); !sameInts(got, []int{0}) {
		t.Fatalf("AndEq should leave [0], got %v", got)
	}
	checkInvariant(t, a)
}

func TestAndEqLongerOperand(t *testing.T) {
	a := FromIndicesSize(70, []int{1, 65, 69})
	b := FromIndicesSize(200, []int{65, 69, 150})
	a.AndEq(b)
	if a.Len() != 70 {
		t.Fatalf("size should stay 70, got %v", a.Len())
	}
	if got := a.Toc(); !sameInts(got, []int{65, 69}) {
		t.Fatalf("AndEq should leave [65 69], got %v", got)
	}
	checkInvariant(t, a)
}

func TestAndEqAcrossBlocks(t *testing.T) {
	a := NewFilled(200, true)
	b := FromIndicesSize(70, []int{3, 68})
	a.AndEq(b)
	if a.Len() != 200 {
		t.Fatalf("size should stay 200, got %v", a.Len())
	}
	if got := a.Toc(); !sameInts(got, []int{3, 68}) {
		t.Fatalf("bits beyond the operand should be cleared, got %v", got)
	}
}

func TestOrEqBounded(t *testing.T) {
	a := FromIndicesSize(3, []int{0})
	b := FromIndicesSize(5, []int{0, 4})
	a.OrEq(b, Bounded)
	if a.Len() != 3 {
		t.Fatalf("bounded OrEq should keep size 3, got %v", a.Len())
	}
	if got := a.Toc(); !sameInts(got, []int{0}) {
		t.Fatalf("bounded OrEq should leave [0], got %v", got)
	}
	checkInvariant(t, a)
}

func TestOrEqExtend(t *testing.T) {
	a := FromIndicesSize(3, []int{0})
	b := FromIndicesSize(5, []int{0, 4})
	a.OrEq(b, Extend)
	if a.Len() != 5 {
		t.Fatalf("extending OrEq should grow to 5, got %v", a.Len())
	}
	if got := a.Toc(); !sameInts(got, []int{0, 4}) {
		t.Fatalf("extending OrEq should give [0 4], got %v", got)
	}
}

func TestOrEqShorterOperand(t *testing.T) {
	a := FromIndicesSize(130, []int{129})
	b := FromIndicesSize(10, []int{2})
	a.OrEq(b, Extend)
	if a.Len() != 130 {
		t.Fatalf("OrEq never shrinks, size should be 130, got %v", a.Len())
	}
	if got := a.Toc(); !sameInts(got, []int{2, 129}) {
		t.Fatalf("OrEq should give [2 129], got %v", got)
	}
}

func TestXorEq(t *testing.T) {
	a := FromIndicesSize(70, []int{1, 2, 66})
	b := FromIndicesSize(100, []int{2, 3, 66, 90})
	bounded := a.Clone().XorEq(b, Bounded)
	if bounded.Len() != 70 {
		t.Fatalf("bounded XorEq should keep size 70, got %v", bounded.Len())
	}
	if got := bounded.Toc(); !sameInts(got, []int{1, 3}) {
		t.Fatalf("bounded XorEq should give [1 3], got %v", got)
	}
	checkInvariant(t, bounded)

	extended := a.Clone().XorEq(b, Extend)
	if extended.Len() != 100 {
		t.Fatalf("extending XorEq should grow to 100, got %v", extended.Len())
	}
	if got := extended.Toc(); !sameInts(got, []int{1, 3, 90}) {
		t.Fatalf("extending XorEq should give [1 3 90], got %v", got)
	}
}

func TestMinusEq(t *testing.T) {
	a := FromIndicesSize(10, []int{1, 2, 3, 8})
	b := FromIndicesSize(4, []int{2, 3})
	a.MinusEq(b)
	if a.Len() != 10 {
		t.Fatalf("MinusEq should keep size 10, got %v", a.Len())
	}
	if got := a.Toc(); !sameInts(got, []int{1, 8}) {
		t.Fatalf("MinusEq should give [1 8], got %v", got)
	}

	c := FromIndicesSize(3, []int{0, 2})
	c.MinusEq(FromIndicesSize(200, []int{0, 150}))
	if c.Len() != 3 || !sameInts(c.Toc(), []int{2}) {
		t.Fatalf("MinusEq with a longer operand should give size 3 [2], got %v", c)
	}
}

func TestSelfOperations(t *testing.T) {
	a := FromIndices([]int{1, 65, 100})
	want := a.Clone()
	a.AndEq(a)
	if !a.Equal(want) {
		t.Fatalf("A &= A should leave A unchanged, got %v", a)
	}
	a.OrEq(a, Extend)
	if !a.Equal(want) {
		t.Fatalf("A |= A should leave A unchanged, got %v", a)
	}
	x := a.Clone()
	x.XorEq(x, Bounded)
	if x.Any() || x.Len() != want.Len() {
		t.Fatalf("A ^= A should clear all bits, got %v", x)
	}
	m := a.Clone()
	m.MinusEq(m)
	if m.Any() || m.Len() != want.Len() {
		t.Fatalf("A -= A should clear all bits, got %v", m)
	}
}

func TestSetFromUnsetFrom(t *testing.T) {
	a := FromIndices([]int{1})
	a.SetFrom(FromIndices([]int{7}))
	if a.Len() != 8 || !sameInts(a.Toc(), []int{1, 7}) {
		t.Fatalf("SetFrom should auto-vivify, got %v", a)
	}
	a.UnsetFrom(FromIndices([]int{1, 30}))
	if a.Len() != 8 || !sameInts(a.Toc(), []int{7}) {
		t.Fatalf("UnsetFrom should not grow, got %v", a)
	}
}

func TestIntersects(t *testing.T) {
	if !FromIndices([]int{2, 7}).Intersects(FromIndices([]int{7, 9})) {
		t.Fatal("{2,7} and {7,9} should intersect")
	}
	if FromIndices([]int{1}).Intersects(FromIndices([]int{2})) {
		t.Fatal("{1} and {2} shouldn't intersect")
	}
	if FromIndices([]int{300}).Intersects(FromIndices([]int{0, 299})) {
		t.Fatal("non-overlapping ranges shouldn't intersect")
	}
	if New().Intersects(FromIndices([]int{0})) {
		t.Fatal("empty set shouldn't intersect anything")
	}
}

func TestFlipAndNot(t *testing.T) {
	a := FromIndicesSize(70, []int{0, 69})
	n := a.Not()
	if n.Len() != 70 || n.Count() != 68 || n.Test(0) || n.Test(69) {
		t.Fatalf("complement mismatch: count %v", n.Count())
	}
	checkInvariant(t, n)
	if a.Count() != 2 {
		t.Fatal("Not should not modify the receiver")
	}
	n.Flip()
	if !n.Equal(a) {
		t.Fatal("double complement should restore")
	}
}

func TestFreeOperators(t *testing.T) {
	a := FromIndicesSize(5, []int{0, 1, 3, 4})
	b := FromIndicesSize(3, []int{0, 2})

	and := And(a, b)
	if and.Len() != 5 || !sameInts(and.Toc(), []int{0}) {
		t.Fatalf("And mismatch: %v", and)
	}
	or := Or(b, a)
	if or.Len() != 5 || !sameInts(or.Toc(), []int{0, 1, 2, 3, 4}) {
		t.Fatalf("Or mismatch: %v", or)
	}
	xor := Xor(b, a)
	if xor.Len() != 5 || !sameInts(xor.Toc(), []int{1, 2, 3, 4}) {
		t.Fatalf("Xor mismatch: %v", xor)
	}
	minus := Minus(a, b)
	if minus.Len() != 5 || !sameInts(minus.Toc(), []int{1, 3, 4}) {
		t.Fatalf("Minus mismatch: %v", minus)
	}
	if a.Count() != 4 || b.Count() != 2 {
		t.Fatal("free operators should not modify their operands")
	}
}

func TestGrowthPolicyString(t *testing.T) {
	if Bounded.String() != "bounded" || Extend.String() != "extend" {
		t.Fatalf("unexpected names %v %v", Bounded, Extend)
	}
}
