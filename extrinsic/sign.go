package extrinsic

import (
	"fmt"

	"github.com/bitfsorg/extrinsic-go/wallet"
)

// Signer holds a private key and signs raw bytes with it.
// *wallet.Keypair is the production implementation.
type Signer interface {
	PublicKey() [wallet.PublicKeySize]byte
	Sign(msg []byte) ([wallet.SignatureSize]byte, error)
}

// Compile-time interface check.
var _ Signer = (*wallet.Keypair)(nil)

// Sign signs the canonical encoding of op.
func Sign(s Signer, op Operation) ([SignatureSize]byte, error) {
	if s == nil {
		return [SignatureSize]byte{}, fmt.Errorf("%w: signer", ErrNilParam)
	}
	msg, err := EncodeOperation(op)
	if err != nil {
		return [SignatureSize]byte{}, err
	}
	return s.Sign(msg)
}

// Verify reports whether sig was produced by the holder of pub over the
// canonical encoding of op.
func Verify(pub PublicKey, op Operation, sig [SignatureSize]byte) bool {
	msg, err := EncodeOperation(op)
	if err != nil {
		return false
	}
	return wallet.Verify(pub, msg, sig)
}

// Build signs op with s and wraps it with its verification envelope.
func Build(op Operation, s Signer) (*Extrinsic, error) {
	sig, err := Sign(s, op)
	if err != nil {
		return nil, fmt.Errorf("extrinsic: sign %s: %w", tagName(op), err)
	}
	return &Extrinsic{
		Operation: op,
		Verification: &VerificationEnvelope{
			Signature: sig,
			PublicKey: s.PublicKey(),
		},
	}, nil
}

// VerifySignature checks the envelope signature against the operation.
func (x *Extrinsic) VerifySignature() error {
	if x == nil || x.Operation == nil {
		return fmt.Errorf("%w: extrinsic", ErrNilParam)
	}
	if x.Verification == nil {
		return ErrUnsigned
	}
	if !Verify(x.Verification.PublicKey, x.Operation, x.Verification.Signature) {
		return ErrBadSignature
	}
	return nil
}

func tagName(op Operation) string {
	if op == nil {
		return "<nil>"
	}
	return op.Tag().String()
}
