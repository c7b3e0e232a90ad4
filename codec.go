package packedbits

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
)

// words views the blocks as a bits-and-blooms bitset without copying.
// The result must not be mutated.
func (b *BitSet) words() *bitset.BitSet {
	return bitset.From(b.blocks)
}

// adopt replaces the contents of b with _size_ bits taken from _words_.
func (b *BitSet) adopt(size int, words []uint64) error {
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidData, size)
	}
	if size > maxSize {
		return fmt.Errorf("%w: size %d out of range", ErrInvalidData, size)
	}
	need := numBlocks(size)
	if len(words) < need {
		return fmt.Errorf("%w: %d blocks for %d bits", ErrInvalidData, len(words), size)
	}
	blocks := make([]uint64, need)
	copy(blocks, words)
	b.packed = packed{blocks: blocks, size: size}
	b.clearTail()
	return nil
}

// WriteTo writes the set to a stream and returns the number of bytes written.
// The layout is the size as a big-endian uint64 followed by the blocks in
// the bits-and-blooms stream format.
func (b *BitSet) WriteTo(stream io.Writer) (int64, error) {
	err := binary.Write(stream, binary.BigEndian, uint64(b.size))
	if err != nil {
		return 0, err
	}
	numBytes, err := b.words().WriteTo(stream)
	if err != nil {
		return 0, err
	}
	return numBytes + int64(binary.Size(uint64(0))), nil
}

// ReadFrom reads a set written by WriteTo and returns the number of bytes read
func (b *BitSet) ReadFrom(stream io.Reader) (int64, error) {
	var size uint64
	err := binary.Read(stream, binary.BigEndian, &size)
	if err != nil {
		return 0, err
	}
	if size > maxSize {
		return 0, fmt.Errorf("%w: size %d out of range", ErrInvalidData, size)
	}
	set := &bitset.BitSet{}
	numBytes, err := set.ReadFrom(stream)
	if err != nil {
		return 0, err
	}
	if err := b.adopt(int(size), set.Bytes()); err != nil {
		return 0, err
	}
	return numBytes + int64(binary.Size(uint64(0))), nil
}

// MarshalBinary implements encoding.BinaryMarshaler
func (b *BitSet) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (b *BitSet) UnmarshalBinary(data []byte) error {
	_, err := b.ReadFrom(bytes.NewReader(data))
	return err
}

// internal type used to marshal/unmarshal BitSet
type bitSetJSON struct {
	Size int             `json:"size"`
	Bits json.RawMessage `json:"bits"`
}

// MarshalJSON encodes the size alongside the bits-and-blooms JSON form of the blocks
func (b *BitSet) MarshalJSON() ([]byte, error) {
	bits, err := b.words().MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(bitSetJSON{Size: b.size, Bits: bits})
}

// UnmarshalJSON decodes the output of MarshalJSON
func (b *BitSet) UnmarshalJSON(data []byte) error {
	var v bitSetJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	set := &bitset.BitSet{}
	if len(v.Bits) > 0 {
		if err := set.UnmarshalJSON(v.Bits); err != nil {
			return err
		}
	}
	return b.adopt(v.Size, set.Bytes())
}
