package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/ChainSafe/go-schnorrkel"
)

const (
	// PublicKeySize is the size of an encoded sr25519 public key.
	PublicKeySize = 32

	// SignatureSize is the size of an encoded sr25519 signature.
	SignatureSize = 64
)

// signingContext is the transcript label the node verifies against.
var signingContext = []byte("substrate")

// Keypair is an sr25519 signing key and its public key. It lives only in
// process memory.
type Keypair struct {
	secret *schnorrkel.SecretKey
	public [PublicKeySize]byte
}

// KeypairFromPhrase derives the keypair for a recovery phrase. The same
// phrase and password always yield the same keypair.
func KeypairFromPhrase(phrase, password string) (*Keypair, error) {
	mini, err := MiniSecretFromPhrase(phrase, password)
	if err != nil {
		return nil, err
	}
	return KeypairFromMiniSecret(mini)
}

// KeypairFromMiniSecret expands a raw mini secret key.
func KeypairFromMiniSecret(mini [MiniSecretSize]byte) (*Keypair, error) {
	msk, err := schnorrkel.NewMiniSecretKeyFromRaw(mini)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	secret := msk.ExpandEd25519()
	pub, err := secret.Public()
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrDerivationFailed, err)
	}

	return &Keypair{secret: secret, public: pub.Encode()}, nil
}

// PublicKey returns the 32-byte public key.
func (k *Keypair) PublicKey() [PublicKeySize]byte { return k.public }

// PublicKeyHex returns the public key as 0x-prefixed hex.
func (k *Keypair) PublicKeyHex() string {
	return "0x" + hex.EncodeToString(k.public[:])
}

// Sign signs msg. Signatures use a random nonce, so signing the same
// message twice yields different, equally valid signatures.
func (k *Keypair) Sign(msg []byte) ([SignatureSize]byte, error) {
	t := schnorrkel.NewSigningContext(signingContext, msg)
	sig, err := k.secret.Sign(t)
	if err != nil {
		return [SignatureSize]byte{}, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return sig.Encode(), nil
}

// Verify reports whether sig is a valid signature over msg by the holder
// of pub. Malformed keys or signatures verify as false.
func Verify(pub [PublicKeySize]byte, msg []byte, sig [SignatureSize]byte) bool {
	pk := new(schnorrkel.PublicKey)
	if err := pk.Decode(pub); err != nil {
		return false
	}

	s := new(schnorrkel.Signature)
	if err := s.Decode(sig); err != nil {
		return false
	}

	ok, err := pk.Verify(s, schnorrkel.NewSigningContext(signingContext, msg))
	return err == nil && ok
}
