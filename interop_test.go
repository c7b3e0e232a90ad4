package packedbits

import (
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsAndBloomsRoundTrip(t *testing.T) {
	set := FromIndicesSize(130, []int{0, 65, 129})
	bb := set.ToBitsAndBlooms()
	require.NotNil(t, bb)
	assert.Equal(t, uint(130), bb.Len())
	assert.Equal(t, uint(3), bb.Count())
	assert.True(t, bb.Test(65))

	back := FromBitsAndBlooms(bb)
	assert.True(t, back.Equal(set))
	checkInvariant(t, back)
}

func TestFromBitsAndBlooms(t *testing.T) {
	bb := bitset.New(10)
	bb.Set(2).Set(9)
	got := FromBitsAndBlooms(bb)
	assert.Equal(t, 10, got.Len())
	assert.Equal(t, []int{2, 9}, got.Toc())
}

func TestRoaringRoundTrip(t *testing.T) {
	set := FromIndicesSize(300, []int{1, 64, 299})
	rb, err := set.ToRoaring()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rb.GetCardinality())
	assert.True(t, rb.Contains(64))

	back := FromRoaring(rb, 300)
	assert.True(t, back.Equal(set))
}

func TestRoaringPositionLimit(t *testing.T) {
	assert.NoError(t, checkRoaringPos(-1))
	assert.NoError(t, checkRoaringPos(math.MaxUint32))
	assert.ErrorIs(t, checkRoaringPos(math.MaxUint32+1), ErrIndexOutOfRange)

	rb, err := New().ToRoaring()
	require.NoError(t, err)
	assert.True(t, rb.IsEmpty())
}

func TestFromRoaringExtends(t *testing.T) {
	rb := roaring.New()
	rb.Add(5)
	rb.Add(1000)
	got := FromRoaring(rb, 10)
	assert.Equal(t, 1001, got.Len())
	assert.Equal(t, []int{5, 1000}, got.Toc())

	empty := FromRoaring(roaring.New(), 7)
	assert.Equal(t, 7, empty.Len())
	assert.True(t, empty.None())
}
