package packedbits

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"sync"

	"github.com/dgryski/go-metro"
	"github.com/kwertop/packedbits/internal/util"
)

// The BloomFilter data structure. It mainly has two fields: _size_ and _numHashes_
// _size_ denotes the number of bits of the bloom filter
// _numHashes_ denotes the number of hashing functions applied on the entrant element
// during insertion or lookup.
// _filter_ is the BitSet backing the filter. It never grows past _size_.
// _lock_ guards _filter_, since a BitSet is not safe for concurrent writes.
type BloomFilter struct {
	size      uint
	numHashes uint
	filter    *BitSet
	lock      sync.RWMutex
}

// NewBloomFilter creates a BloomFilter of _size_ bits using _numHashes_ hash functions
func NewBloomFilter(size, numHashes uint) *BloomFilter {
	size = util.Max(size, 1)
	return &BloomFilter{
		size:      size,
		numHashes: util.Max(numHashes, 1),
		filter:    NewSize(int(size)),
	}
}

// NewBloomFilterWithParameters creates a BloomFilter sized for _numItems_ items
// at the acceptable false positive rate _errorRate_
func NewBloomFilterWithParameters(numItems uint, errorRate float64) *BloomFilter {
	size := util.CalculateFilterSize(numItems, errorRate)
	numHashes := util.CalculateNumHashes(size, numItems)
	return NewBloomFilter(size, numHashes)
}

// Insert writes new _data_ in the bloom filter
func (bloomFilter *BloomFilter) Insert(data []byte) *BloomFilter {
	bloomFilter.lock.Lock()
	defer bloomFilter.lock.Unlock()

	hashes := getHashes(data)
	for i := uint(0); i < bloomFilter.numHashes; i++ {
		bloomFilter.filter.set(bloomFilter.getIndex(hashes, i))
	}
	return bloomFilter
}

// Lookup returns true if the corresponding bits in the bitset for _data_ are set,
// otherwise false
func (bloomFilter *BloomFilter) Lookup(data []byte) bool {
	bloomFilter.lock.RLock()
	defer bloomFilter.lock.RUnlock()

	hashes := getHashes(data)
	for i := uint(0); i < bloomFilter.numHashes; i++ {
		if !bloomFilter.filter.get(bloomFilter.getIndex(hashes, i)) {
			return false
		}
	}
	return true
}

// InsertString accepts string value as _data_ for inserting into the Bloom filter
func (bloomFilter *BloomFilter) InsertString(data string) *BloomFilter {
	return bloomFilter.Insert([]byte(data))
}

// LookupString accepts string value as _data_ to lookup the Bloom filter
func (bloomFilter *BloomFilter) LookupString(data string) bool {
	return bloomFilter.Lookup([]byte(data))
}

// GetCap returns the size of the bloom filter
func (bloomFilter *BloomFilter) GetCap() uint {
	return bloomFilter.size
}

// GetNumHashes returns the number of hash functions used in the bloom filter
func (bloomFilter *BloomFilter) GetNumHashes() uint {
	return bloomFilter.numHashes
}

// GetBitSet returns a copy of the backing bitset
func (bloomFilter *BloomFilter) GetBitSet() *BitSet {
	bloomFilter.lock.RLock()
	defer bloomFilter.lock.RUnlock()
	return bloomFilter.filter.Clone()
}

// BloomPositiveRate returns the false positive error rate of the filter
func (bloomFilter *BloomFilter) BloomPositiveRate() float64 {
	bloomFilter.lock.RLock()
	length := bloomFilter.filter.Count()
	bloomFilter.lock.RUnlock()
	return math.Pow(1-math.Exp(-float64(length)/float64(bloomFilter.size)), float64(bloomFilter.numHashes))
}

// Equals checks if two BloomFilter's are equal
func (aFilter *BloomFilter) Equals(bFilter *BloomFilter) bool {
	if aFilter == bFilter {
		return true
	}
	if aFilter.size != bFilter.size || aFilter.numHashes != bFilter.numHashes {
		return false
	}
	// never hold both locks at once
	aFilter.lock.RLock()
	aBits := aFilter.filter.Clone()
	aFilter.lock.RUnlock()
	bFilter.lock.RLock()
	defer bFilter.lock.RUnlock()
	return aBits.Equal(bFilter.filter)
}

// internal type used to marshal/unmarshal BloomFilter
type bloomFilterType struct {
	M uint    `json:"m"`
	K uint    `json:"k"`
	B *BitSet `json:"b"`
}

// Export JSON marshals the BloomFilter and returns a byte slice containing the data
func (bloomFilter *BloomFilter) Export() ([]byte, error) {
	bloomFilter.lock.RLock()
	defer bloomFilter.lock.RUnlock()
	return json.Marshal(bloomFilterType{bloomFilter.size, bloomFilter.numHashes, bloomFilter.filter})
}

// Import JSON unmarshals the _data_ into the BloomFilter
func (bloomFilter *BloomFilter) Import(data []byte) error {
	f := bloomFilterType{B: New()}
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.B == nil {
		f.B = New()
	}
	bloomFilter.lock.Lock()
	defer bloomFilter.lock.Unlock()
	bloomFilter.size = util.Max(f.M, 1)
	bloomFilter.numHashes = util.Max(f.K, 1)
	bloomFilter.filter = f.B.Extend(int(bloomFilter.size)).Bound(int(bloomFilter.size))
	return nil
}

// WriteTo writes the BloomFilter onto the specified _stream_ and returns the
// number of bytes written.
func (bloomFilter *BloomFilter) WriteTo(stream io.Writer) (int64, error) {
	bloomFilter.lock.RLock()
	defer bloomFilter.lock.RUnlock()
	err := binary.Write(stream, binary.BigEndian, uint64(bloomFilter.size))
	if err != nil {
		return 0, err
	}
	err = binary.Write(stream, binary.BigEndian, uint64(bloomFilter.numHashes))
	if err != nil {
		return 0, err
	}
	numBytes, err := bloomFilter.filter.WriteTo(stream)
	return numBytes + int64(2*binary.Size(uint64(0))), err
}

// ReadFrom reads the BloomFilter from the specified _stream_ and returns the
// number of bytes read.
func (bloomFilter *BloomFilter) ReadFrom(stream io.Reader) (int64, error) {
	var size, numHashes uint64
	err := binary.Read(stream, binary.BigEndian, &size)
	if err != nil {
		return 0, err
	}
	err = binary.Read(stream, binary.BigEndian, &numHashes)
	if err != nil {
		return 0, err
	}
	set := New()
	numBytes, err := set.ReadFrom(stream)
	if err != nil {
		return 0, err
	}
	bloomFilter.lock.Lock()
	defer bloomFilter.lock.Unlock()
	bloomFilter.size = util.Max(uint(size), 1)
	bloomFilter.numHashes = util.Max(uint(numHashes), 1)
	bloomFilter.filter = set.Extend(int(bloomFilter.size)).Bound(int(bloomFilter.size))
	return numBytes + int64(2*binary.Size(uint64(0))), nil
}

func getHashes(data []byte) [2]uint64 {
	hash1, hash2 := metro.Hash128(data, 1373)
	return [2]uint64{hash1, hash2}
}

func (bloomFilter *BloomFilter) getIndex(hashes [2]uint64, i uint) int {
	j := uint64(i)
	return int((hashes[0] + j*hashes[1] + (j*j*j-j)/6) % uint64(bloomFilter.size))
}
