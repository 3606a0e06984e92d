package extrinsic

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitfsorg/extrinsic-go/codec"
)

// PublicKeySize is the size of an account public key.
const PublicKeySize = 32

// PublicKey identifies an account on the ledger.
type PublicKey [PublicKeySize]byte

// String returns the key as 0x-prefixed hex.
func (k PublicKey) String() string { return "0x" + hex.EncodeToString(k[:]) }

// PublicKeyFromBytes copies a 32-byte buffer into a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var k PublicKey
	if len(b) != PublicKeySize {
		return k, fmt.Errorf("%w: %w: got %d bytes", ErrInvalidPublicKey, codec.ErrEncodingInput, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// ParsePublicKey parses a hex public key, with or without the 0x prefix.
func ParsePublicKey(s string) (PublicKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return PublicKeyFromBytes(b)
}

// Tag is the one-byte discriminant of an Operation: its declaration index.
type Tag uint8

const (
	TagTransfer Tag = iota
	TagUpgrade
	TagSetFee
	TagSetReward
	TagMint
)

var tagNames = [...]string{
	TagTransfer:  "transfer",
	TagUpgrade:   "upgrade",
	TagSetFee:    "set_fee",
	TagSetReward: "set_reward",
	TagMint:      "mint",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Operation is one of the closed set of state-changing requests:
// Transfer, Upgrade, SetFee, SetReward and Mint.
type Operation interface {
	Tag() Tag
	encodeFields(e *codec.Encoder)
}

// Transfer moves Amount from From to To.
type Transfer struct {
	From   PublicKey
	To     PublicKey
	Amount codec.Amount
}

// Upgrade replaces the ledger runtime code.
type Upgrade struct {
	Code []byte
}

// SetFee sets the per-operation fee.
type SetFee struct {
	Amount codec.Amount
}

// SetReward sets the block reward.
type SetReward struct {
	Amount codec.Amount
}

// Mint creates Amount new units in To.
type Mint struct {
	To     PublicKey
	Amount codec.Amount
}

func (Transfer) Tag() Tag  { return TagTransfer }
func (Upgrade) Tag() Tag   { return TagUpgrade }
func (SetFee) Tag() Tag    { return TagSetFee }
func (SetReward) Tag() Tag { return TagSetReward }
func (Mint) Tag() Tag      { return TagMint }

func (op Transfer) encodeFields(e *codec.Encoder) {
	e.PutFixed(op.From[:], PublicKeySize)
	e.PutFixed(op.To[:], PublicKeySize)
	e.PutAmount(op.Amount)
}

func (op Upgrade) encodeFields(e *codec.Encoder) {
	e.PutBytes(op.Code)
}

func (op SetFee) encodeFields(e *codec.Encoder) {
	e.PutAmount(op.Amount)
}

func (op SetReward) encodeFields(e *codec.Encoder) {
	e.PutAmount(op.Amount)
}

func (op Mint) encodeFields(e *codec.Encoder) {
	e.PutFixed(op.To[:], PublicKeySize)
	e.PutAmount(op.Amount)
}

// EncodeOperation returns the canonical encoding of op: the tag byte
// followed by the fields in declaration order. These are the bytes a
// signature covers.
func EncodeOperation(op Operation) ([]byte, error) {
	e := codec.NewEncoder()
	if err := writeOperation(e, op); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func writeOperation(e *codec.Encoder, op Operation) error {
	if op == nil {
		return fmt.Errorf("%w: operation", ErrNilParam)
	}
	e.PutU8(byte(op.Tag()))
	op.encodeFields(e)
	return e.Err()
}

// DecodeOperation decodes exactly one operation from b.
func DecodeOperation(b []byte) (Operation, error) {
	d := codec.NewDecoder(b)
	op, err := readOperation(d)
	if err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return op, nil
}

func readOperation(d *codec.Decoder) (Operation, error) {
	tag, err := d.U8()
	if err != nil {
		return nil, err
	}

	switch Tag(tag) {
	case TagTransfer:
		var op Transfer
		if err := d.Fixed(op.From[:]); err != nil {
			return nil, err
		}
		if err := d.Fixed(op.To[:]); err != nil {
			return nil, err
		}
		if op.Amount, err = d.Amount(); err != nil {
			return nil, err
		}
		return op, nil

	case TagUpgrade:
		code, err := d.Bytes()
		if err != nil {
			return nil, err
		}
		return Upgrade{Code: code}, nil

	case TagSetFee:
		a, err := d.Amount()
		if err != nil {
			return nil, err
		}
		return SetFee{Amount: a}, nil

	case TagSetReward:
		a, err := d.Amount()
		if err != nil {
			return nil, err
		}
		return SetReward{Amount: a}, nil

	case TagMint:
		var op Mint
		if err := d.Fixed(op.To[:]); err != nil {
			return nil, err
		}
		if op.Amount, err = d.Amount(); err != nil {
			return nil, err
		}
		return op, nil

	default:
		return nil, fmt.Errorf("%w: operation tag %d", codec.ErrUnknownDiscriminant, tag)
	}
}
