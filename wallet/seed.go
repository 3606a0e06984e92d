// Package wallet derives sr25519 signing keypairs from BIP39 recovery phrases.
//
// Derivation follows the node's convention rather than the BIP39 seed:
// the phrase is reduced to its entropy, and
//
//	mini = PBKDF2(entropy, "mnemonic"+password, 2048, 64, SHA512)[:32]
//
// is expanded Ed25519-style into the schnorrkel secret key. Nothing is
// written to disk.
package wallet

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/bsv-blockchain/go-sdk/compat/bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Mnemonic entropy sizes.
	Mnemonic12Words = 128 // 12-word mnemonic
	Mnemonic24Words = 256 // 24-word mnemonic

	// PBKDF2 parameters for mini-secret derivation.
	seedIterations = 2048
	seedLen        = 64

	// MiniSecretSize is the size of the schnorrkel mini secret key.
	MiniSecretSize = 32
)

// GenerateMnemonic creates a new BIP39 mnemonic with the specified entropy bits.
// Use Mnemonic12Words (128) for 12 words or Mnemonic24Words (256) for 24 words.
func GenerateMnemonic(entropyBits int) (string, error) {
	if entropyBits != Mnemonic12Words && entropyBits != Mnemonic24Words {
		return "", ErrInvalidEntropy
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("wallet: failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: failed to generate mnemonic: %w", err)
	}

	return mnemonic, nil
}

// NormalizePhrase lower-cases the phrase and collapses runs of whitespace
// to single spaces.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// ValidatePhrase checks if a phrase is a well-formed BIP39 mnemonic.
func ValidatePhrase(phrase string) bool {
	phrase = NormalizePhrase(phrase)
	if phrase == "" {
		return false
	}
	return bip39.IsMnemonicValid(phrase)
}

// MiniSecretFromPhrase derives the 32-byte schnorrkel mini secret for a
// phrase and optional password. An empty password still participates in
// derivation.
func MiniSecretFromPhrase(phrase, password string) ([MiniSecretSize]byte, error) {
	var mini [MiniSecretSize]byte

	phrase = NormalizePhrase(phrase)
	if !ValidatePhrase(phrase) {
		return mini, ErrInvalidPhrase
	}

	entropy, err := schnorrkel.MnemonicToEntropy(phrase)
	if err != nil {
		return mini, fmt.Errorf("%w: %w", ErrInvalidPhrase, err)
	}

	seed := pbkdf2.Key(entropy, []byte("mnemonic"+password), seedIterations, seedLen, sha512.New)
	copy(mini[:], seed[:MiniSecretSize])
	return mini, nil
}
