// Package codec implements the canonical binary layout shared with the
// ledger node: little-endian fixed-width integers, raw fixed-size arrays,
// compact-length-prefixed byte sequences and one-byte discriminants.
package codec

import "fmt"

// Encoder builds a canonical byte encoding. The first invalid input is
// recorded and all later writes become no-ops; check Err before using Bytes.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 128)}
}

// PutU8 writes a single byte, typically a discriminant.
func (e *Encoder) PutU8(b byte) {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, b)
}

// PutFixed writes b as-is with no length prefix. b must be exactly size bytes.
func (e *Encoder) PutFixed(b []byte, size int) {
	if e.err != nil {
		return
	}
	if len(b) != size {
		e.err = fmt.Errorf("%w: fixed field needs %d bytes, got %d", ErrEncodingInput, size, len(b))
		return
	}
	e.buf = append(e.buf, b...)
}

// PutAmount writes a 16-byte little-endian amount.
func (e *Encoder) PutAmount(a Amount) {
	if e.err != nil {
		return
	}
	e.buf = AppendU128(e.buf, a)
}

// PutCompact writes v as a compact integer.
func (e *Encoder) PutCompact(v uint64) {
	if e.err != nil {
		return
	}
	e.buf = AppendCompact(e.buf, v)
}

// PutBytes writes a compact length prefix followed by b.
func (e *Encoder) PutBytes(b []byte) {
	if e.err != nil {
		return
	}
	e.buf = AppendCompact(e.buf, uint64(len(b)))
	e.buf = append(e.buf, b...)
}

// PutOption writes the presence tag of an optional value: 0 absent, 1 present.
// A present value's encoding must follow.
func (e *Encoder) PutOption(present bool) {
	if present {
		e.PutU8(1)
	} else {
		e.PutU8(0)
	}
}

// Err returns the first encoding error, if any.
func (e *Encoder) Err() error { return e.err }

// Bytes returns the encoded bytes, or nil if an error was recorded.
func (e *Encoder) Bytes() []byte {
	if e.err != nil {
		return nil
	}
	return e.buf
}
