package codec

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// AmountSize is the encoded width of an Amount in bytes.
const AmountSize = 16

// Amount is an unsigned 128-bit quantity. The zero value is 0.
//
// It is backed by a uint256.Int whose upper two limbs are always zero;
// every constructor enforces that bound, so encoding never fails.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an Amount holding v.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// AmountFromUint256 converts a 256-bit integer, rejecting values wider than 128 bits.
func AmountFromUint256(v *uint256.Int) (Amount, error) {
	if v == nil {
		return Amount{}, fmt.Errorf("%w: nil amount", ErrEncodingInput)
	}
	if v.BitLen() > 128 {
		return Amount{}, fmt.Errorf("%w: amount exceeds 128 bits", ErrEncodingInput)
	}
	var a Amount
	a.v.Set(v)
	return a, nil
}

// ParseAmount parses a base-10 amount as typed by a user.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: amount %q: %w", ErrEncodingInput, s, err)
	}
	return AmountFromUint256(v)
}

// Uint256 returns a copy of the amount as a uint256.Int.
func (a Amount) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&a.v)
}

// Uint64 returns the amount and whether it fits in 64 bits.
func (a Amount) Uint64() (uint64, bool) {
	return a.v.Uint64(), a.v.IsUint64()
}

// IsZero reports whether the amount is 0.
func (a Amount) IsZero() bool { return a.v.IsZero() }

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

// String returns the base-10 representation.
func (a Amount) String() string { return a.v.Dec() }

// MarshalText implements encoding.TextMarshaler using base 10.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.v.Dec()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// EncodeU128 returns the 16-byte little-endian encoding of a.
func EncodeU128(a Amount) []byte {
	return AppendU128(make([]byte, 0, AmountSize), a)
}

// AppendU128 appends the 16-byte little-endian encoding of a to dst.
func AppendU128(dst []byte, a Amount) []byte {
	// uint256.Int stores little-endian 64-bit limbs.
	dst = binary.LittleEndian.AppendUint64(dst, a.v[0])
	return binary.LittleEndian.AppendUint64(dst, a.v[1])
}

// DecodeU128 decodes exactly 16 little-endian bytes.
func DecodeU128(b []byte) (Amount, error) {
	if len(b) < AmountSize {
		return Amount{}, fmt.Errorf("%w: amount needs %d bytes, got %d", ErrTruncated, AmountSize, len(b))
	}
	if len(b) > AmountSize {
		return Amount{}, fmt.Errorf("%w: amount is %d bytes, got %d", ErrTrailingBytes, AmountSize, len(b))
	}
	var a Amount
	a.v[0] = binary.LittleEndian.Uint64(b[0:8])
	a.v[1] = binary.LittleEndian.Uint64(b[8:16])
	return a, nil
}
