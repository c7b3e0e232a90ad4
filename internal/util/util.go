package util

import (
	"encoding/binary"
	"math"
	"math/bits"
	"math/rand"
	"sync"
	"time"
)

var (
	srcMu sync.Mutex
	src   = rand.NewSource(time.Now().UnixNano())
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// CalculateFilterSize returns the number of bits a bloom filter needs to
// hold _length_ items at the given false positive rate.
func CalculateFilterSize(length uint, errorRate float64) uint {
	return uint(math.Ceil(-((float64(length) * math.Log(errorRate)) / math.Pow(math.Log(2), 2))))
}

// CalculateNumHashes returns the optimal number of hash functions for a
// bloom filter of _size_ bits holding _length_ items.
func CalculateNumHashes(size, length uint) uint {
	if length == 0 {
		return 1
	}
	return uint(math.Ceil(float64(size/length) * math.Log(2)))
}

func Max(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}

// GenerateRandomString returns a random alphabetic string of length _n_
func GenerateRandomString(n int) string {
	srcMu.Lock()
	defer srcMu.Unlock()
	b := make([]byte, n)
	// A src.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, src.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}
	return string(b)
}

// BlocksToRedisBytes lays out the first _nbits_ bits of _blocks_ the way a
// Redis bitmap stores them: bit i lives in byte i/8, counted from the most
// significant bit.
func BlocksToRedisBytes(blocks []uint64, nbits int) []byte {
	out := make([]byte, len(blocks)*8)
	for i, w := range blocks {
		binary.LittleEndian.PutUint64(out[i*8:], w)
	}
	out = out[:(nbits+7)/8]
	for i := range out {
		out[i] = bits.Reverse8(out[i])
	}
	return out
}

// RedisBytesToBlocks is the inverse of BlocksToRedisBytes. Bits at
// positions >= nbits are dropped.
func RedisBytesToBlocks(data []byte, nbits int) []uint64 {
	blocks := make([]uint64, (nbits+63)/64)
	buf := make([]byte, len(blocks)*8)
	n := min(len(data), (nbits+7)/8)
	for i := 0; i < n; i++ {
		buf[i] = bits.Reverse8(data[i])
	}
	for i := range blocks {
		blocks[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	if off := nbits % 64; off != 0 && len(blocks) > 0 {
		blocks[len(blocks)-1] &= ^uint64(0) >> (64 - off)
	}
	return blocks
}
