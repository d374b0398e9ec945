package champ

import (
	"encoding/binary"
	"fmt"
)

// Sequence codec: encode/decode a slice of elements as a 32-bit count
// prefix followed by each element's own encoding, via a caller-
// supplied per-element codec. Adapted from the teacher's
// Serialize.go fixed-width little-endian primitives
// (serializeUint64/32): those primitives are kept verbatim below as
// the building blocks codecs for common element types use, but the
// framing (count prefix + elements) is new, since the teacher never
// needed to serialize a plain ordered sequence - only trie nodes
// addressed by byte offset within a memory-mapped file.

// ElementCodec encodes and decodes a single element of type T to/from
// its wire representation. Decode must report how many bytes of data
// it consumed so Decode (below) can advance past it.
type ElementCodec[T any] struct {
	Encode func(T) []byte
	Decode func(data []byte) (value T, consumed int, err error)
}

// Encode serializes elements as a 4-byte little-endian count followed
// by each element's encoding in order.
func Encode[T any](elements []T, codec ElementCodec[T]) []byte {
	out := make([]byte, 4, 4+len(elements)*8)
	binary.LittleEndian.PutUint32(out, uint32(len(elements)))
	for _, e := range elements {
		out = append(out, codec.Encode(e)...)
	}
	return out
}

// Decode parses the wire representation Encode produces back into a
// slice of elements, in their original order.
func Decode[T any](data []byte, codec ElementCodec[T]) ([]T, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("decoding sequence count prefix: %w", ErrIllegalArgument)
	}
	count := binary.LittleEndian.Uint32(data[:4])
	rest := data[4:]

	out := make([]T, 0, count)
	for i := uint32(0); i < count; i++ {
		value, consumed, err := codec.Decode(rest)
		if err != nil {
			return nil, fmt.Errorf("decoding element %d of %d: %w", i, count, err)
		}
		if consumed <= 0 || consumed > len(rest) {
			return nil, fmt.Errorf("element %d of %d: %w", i, count, ErrIllegalState)
		}
		out = append(out, value)
		rest = rest[consumed:]
	}
	return out, nil
}

// StringCodec encodes a string as a 4-byte length prefix followed by
// its UTF-8 bytes, a direct descendant of the teacher's KeyLength +
// Key framing for leaf nodes (Types.go's NodeKeyLength/NodeKeyIdx).
var StringCodec = ElementCodec[string]{
	Encode: func(s string) []byte {
		out := make([]byte, 4, 4+len(s))
		binary.LittleEndian.PutUint32(out, uint32(len(s)))
		return append(out, s...)
	},
	Decode: func(data []byte) (string, int, error) {
		if len(data) < 4 {
			return "", 0, fmt.Errorf("string length prefix: %w", ErrIllegalArgument)
		}
		length := binary.LittleEndian.Uint32(data[:4])
		if uint32(len(data)-4) < length {
			return "", 0, fmt.Errorf("string body: %w", ErrIllegalArgument)
		}
		return string(data[4 : 4+length]), int(4 + length), nil
	},
}

// Uint64Codec encodes a uint64 as 8 little-endian bytes.
var Uint64Codec = ElementCodec[uint64]{
	Encode: serializeUint64,
	Decode: func(data []byte) (uint64, int, error) {
		v, err := deserializeUint64(data)
		if err != nil {
			return 0, 0, err
		}
		return v, 8, nil
	},
}

//============================================= fixed-width primitive helpers

func serializeUint64(in uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, in)
	return buf
}

func deserializeUint64(data []byte) (uint64, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("uint64 needs 8 bytes, got %d: %w", len(data), ErrIllegalArgument)
	}
	return binary.LittleEndian.Uint64(data[:8]), nil
}

func serializeUint32(in uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, in)
	return buf
}

func deserializeUint32(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("uint32 needs 4 bytes, got %d: %w", len(data), ErrIllegalArgument)
	}
	return binary.LittleEndian.Uint32(data[:4]), nil
}
