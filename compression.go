package packedbits

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType selects the block compression of a snapshot.
type CompressionType uint8

const (
	// CompressionNone stores the binary form as is.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD (better ratio on large sparse sets).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Header: [type u8][raw size u32][packed size u32]
const snapshotHeaderSize = 9

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// checkSnapshotLen rejects payloads whose length does not fit the u32 header fields
func checkSnapshotLen(n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("packedbits: snapshot payload of %d bytes exceeds %d", n, uint64(math.MaxUint32))
	}
	return nil
}

// MarshalCompressed encodes the binary form of b and compresses it with _ct_.
// When compression does not shrink the payload it is stored raw.
func (b *BitSet) MarshalCompressed(ct CompressionType) ([]byte, error) {
	raw, err := b.MarshalBinary()
	if err != nil {
		return nil, err
	}

	var packedData []byte
	switch ct {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, err
		}
		packedData = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		packedData = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("packedbits: unsupported compression %v", ct)
	}

	if len(packedData) == 0 || len(packedData) >= len(raw) {
		ct, packedData = CompressionNone, raw
	}
	if err := checkSnapshotLen(len(raw)); err != nil {
		return nil, err
	}
	out := make([]byte, snapshotHeaderSize+len(packedData))
	out[0] = byte(ct)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[5:], uint32(len(packedData)))
	copy(out[snapshotHeaderSize:], packedData)
	return out, nil
}

// UnmarshalCompressed decodes a payload produced by MarshalCompressed
func (b *BitSet) UnmarshalCompressed(data []byte) error {
	if len(data) < snapshotHeaderSize {
		return fmt.Errorf("%w: snapshot too small for header", ErrInvalidData)
	}
	ct := CompressionType(data[0])
	rawSize := binary.LittleEndian.Uint32(data[1:])
	packedSize := binary.LittleEndian.Uint32(data[5:])
	if uint64(len(data)-snapshotHeaderSize) < uint64(packedSize) {
		return fmt.Errorf("%w: truncated snapshot", ErrInvalidData)
	}
	body := data[snapshotHeaderSize : snapshotHeaderSize+int(packedSize)]

	var raw []byte
	switch ct {
	case CompressionNone:
		raw = body
	case CompressionLZ4:
		raw = make([]byte, rawSize)
		n, err := lz4.UncompressBlock(body, raw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		raw = raw[:n]
	case CompressionZSTD:
		dec := getZstdDecoder()
		decoded, err := dec.DecodeAll(body, make([]byte, 0, rawSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		raw = decoded
	default:
		return fmt.Errorf("%w: unknown compression %v", ErrInvalidData, ct)
	}
	if uint32(len(raw)) != rawSize {
		return fmt.Errorf("%w: decompressed size mismatch", ErrInvalidData)
	}
	return b.UnmarshalBinary(raw)
}
