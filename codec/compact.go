package codec

import (
	"encoding/binary"
	"math/bits"
)

// Compact integer modes, selected by the two low bits of the first byte.
const (
	compactSingle = 0b00 // 6-bit value in one byte
	compactTwo    = 0b01 // 14-bit value in two bytes
	compactFour   = 0b10 // 30-bit value in four bytes
	compactBig    = 0b11 // (upper six bits + 4) little-endian bytes follow

	maxSingle = 1 << 6
	maxTwo    = 1 << 14
	maxFour   = 1 << 30
)

// AppendCompact appends the smallest compact encoding of v to dst.
func AppendCompact(dst []byte, v uint64) []byte {
	switch {
	case v < maxSingle:
		return append(dst, byte(v)<<2|compactSingle)
	case v < maxTwo:
		return binary.LittleEndian.AppendUint16(dst, uint16(v)<<2|compactTwo)
	case v < maxFour:
		return binary.LittleEndian.AppendUint32(dst, uint32(v)<<2|compactFour)
	default:
		n := (bits.Len64(v) + 7) / 8
		dst = append(dst, byte(n-4)<<2|compactBig)
		for i := 0; i < n; i++ {
			dst = append(dst, byte(v>>(8*i)))
		}
		return dst
	}
}

// CompactLen returns the number of bytes AppendCompact writes for v.
func CompactLen(v uint64) int {
	switch {
	case v < maxSingle:
		return 1
	case v < maxTwo:
		return 2
	case v < maxFour:
		return 4
	default:
		return 1 + (bits.Len64(v)+7)/8
	}
}
