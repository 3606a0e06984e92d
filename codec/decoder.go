package codec

import (
	"encoding/binary"
	"fmt"
)

// Decoder reads canonical values from a byte slice. It never reads past
// the end of its input; every short read yields ErrTruncated.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a Decoder over b. b is not copied.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.off }

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.off }

func (d *Decoder) take(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, d.off, d.Remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// U8 reads a single byte.
func (d *Decoder) U8() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Fixed fills dst with the next len(dst) bytes.
func (d *Decoder) Fixed(dst []byte) error {
	b, err := d.take(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// Amount reads a 16-byte little-endian amount.
func (d *Decoder) Amount() (Amount, error) {
	b, err := d.take(AmountSize)
	if err != nil {
		return Amount{}, err
	}
	return DecodeU128(b)
}

// Compact reads a compact integer and rejects encodings that are not minimal
// or do not fit in 64 bits.
func (d *Decoder) Compact() (uint64, error) {
	first, err := d.U8()
	if err != nil {
		return 0, err
	}

	switch first & 0b11 {
	case compactSingle:
		return uint64(first >> 2), nil

	case compactTwo:
		rest, err := d.take(1)
		if err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint16([]byte{first, rest[0]}) >> 2)
		if v < maxSingle {
			return 0, fmt.Errorf("%w: %d in two-byte mode", ErrNonCanonical, v)
		}
		return v, nil

	case compactFour:
		rest, err := d.take(3)
		if err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint32([]byte{first, rest[0], rest[1], rest[2]}) >> 2)
		if v < maxTwo {
			return 0, fmt.Errorf("%w: %d in four-byte mode", ErrNonCanonical, v)
		}
		return v, nil

	default:
		n := int(first>>2) + 4
		if n > 8 {
			return 0, fmt.Errorf("%w: compact integer of %d bytes", ErrOverflow, n)
		}
		b, err := d.take(n)
		if err != nil {
			return 0, err
		}
		var v uint64
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		if v < maxFour || b[n-1] == 0 {
			return 0, fmt.Errorf("%w: %d in %d-byte big mode", ErrNonCanonical, v, n)
		}
		return v, nil
	}
}

// Bytes reads a compact length prefix and that many bytes. The declared
// length is checked against the remaining input before anything is allocated.
func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.Compact()
	if err != nil {
		return nil, err
	}
	if n > uint64(d.Remaining()) {
		return nil, fmt.Errorf("%w: declared length %d, have %d", ErrTruncated, n, d.Remaining())
	}
	b, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Option reads the presence tag of an optional value.
func (d *Decoder) Option() (bool, error) {
	tag, err := d.U8()
	if err != nil {
		return false, err
	}
	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: option tag %d", ErrUnknownDiscriminant, tag)
	}
}

// Finish reports ErrTrailingBytes if any input is left unread.
func (d *Decoder) Finish() error {
	if r := d.Remaining(); r != 0 {
		return fmt.Errorf("%w: %d unread bytes at offset %d", ErrTrailingBytes, r, d.off)
	}
	return nil
}
