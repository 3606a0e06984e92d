package extrinsic

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("extrinsic: required parameter is nil")

	// ErrInvalidPublicKey indicates a public key buffer is not 32 bytes or is not valid hex.
	ErrInvalidPublicKey = errors.New("extrinsic: public key must be 32 bytes")

	// ErrInvalidHex indicates the hex wire form could not be parsed.
	ErrInvalidHex = errors.New("extrinsic: invalid hex encoding")

	// ErrUnsigned indicates an extrinsic without a verification envelope.
	ErrUnsigned = errors.New("extrinsic: no verification envelope")

	// ErrBadSignature indicates the envelope signature does not verify.
	ErrBadSignature = errors.New("extrinsic: signature verification failed")
)
