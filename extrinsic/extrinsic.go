// Package extrinsic builds, signs and encodes the operations submitted to
// the ledger node.
//
// Wire layout of an Extrinsic:
//
//	tag(1) | operation fields | option(1) [ | signature(64) | public key(32) ]
//
// The signature covers the operation bytes only, never the envelope.
package extrinsic

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitfsorg/extrinsic-go/codec"
	"golang.org/x/crypto/blake2b"
)

// SignatureSize is the size of an sr25519 signature.
const SignatureSize = 64

// HexPrefix precedes every hex payload sent to the node.
const HexPrefix = "0x"

// VerificationEnvelope binds an operation to the key that signed it.
type VerificationEnvelope struct {
	Signature [SignatureSize]byte
	PublicKey PublicKey
}

// Extrinsic is the unit transmitted to the node. Verification is nil only
// for unsigned extrinsics.
type Extrinsic struct {
	Operation    Operation
	Verification *VerificationEnvelope
}

// Encode returns the canonical wire bytes of x.
func (x *Extrinsic) Encode() ([]byte, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: extrinsic", ErrNilParam)
	}

	e := codec.NewEncoder()
	if err := writeOperation(e, x.Operation); err != nil {
		return nil, err
	}
	e.PutOption(x.Verification != nil)
	if v := x.Verification; v != nil {
		e.PutFixed(v.Signature[:], SignatureSize)
		e.PutFixed(v.PublicKey[:], PublicKeySize)
	}
	if err := e.Err(); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Hex returns the 0x-prefixed lowercase hex of the wire bytes, the form
// passed to author_submitExtrinsic.
func (x *Extrinsic) Hex() (string, error) {
	b, err := x.Encode()
	if err != nil {
		return "", err
	}
	return HexPrefix + hex.EncodeToString(b), nil
}

// Hash returns the BLAKE2b-256 digest of the wire bytes, which is the
// identifier the node reports for an accepted extrinsic.
func (x *Extrinsic) Hash() ([32]byte, error) {
	b, err := x.Encode()
	if err != nil {
		return [32]byte{}, err
	}
	return HashBytes(b), nil
}

// HashBytes returns the BLAKE2b-256 digest of already encoded wire bytes.
func HashBytes(b []byte) [32]byte {
	return blake2b.Sum256(b)
}

// Decode parses wire bytes into an Extrinsic. Trailing bytes are an error.
func Decode(b []byte) (*Extrinsic, error) {
	d := codec.NewDecoder(b)

	op, err := readOperation(d)
	if err != nil {
		return nil, err
	}
	x := &Extrinsic{Operation: op}

	present, err := d.Option()
	if err != nil {
		return nil, err
	}
	if present {
		v := new(VerificationEnvelope)
		if err := d.Fixed(v.Signature[:]); err != nil {
			return nil, err
		}
		if err := d.Fixed(v.PublicKey[:]); err != nil {
			return nil, err
		}
		x.Verification = v
	}

	if err := d.Finish(); err != nil {
		return nil, err
	}
	return x, nil
}

// DecodeHex parses the 0x-prefixed hex form produced by Hex.
func DecodeHex(s string) (*Extrinsic, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, HexPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return Decode(b)
}
