package wallet

import "errors"

var (
	// ErrInvalidPhrase indicates the recovery phrase fails BIP39 validation
	// (word count, unknown word, or checksum).
	ErrInvalidPhrase = errors.New("wallet: invalid recovery phrase")

	// ErrInvalidEntropy indicates entropy bits is not 128 or 256.
	ErrInvalidEntropy = errors.New("wallet: entropy bits must be 128 or 256")

	// ErrDerivationFailed indicates the signing key could not be derived from the seed.
	ErrDerivationFailed = errors.New("wallet: key derivation failed")

	// ErrSigningFailed indicates the signature scheme returned an error.
	ErrSigningFailed = errors.New("wallet: signing failed")
)
