package wallet

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// devPhrase is the well-known development phrase shipped with node tooling.
const devPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

const abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// --- Mnemonic tests ---

func TestGenerateMnemonic_12Words(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	words := strings.Fields(mnemonic)
	assert.Len(t, words, 12, "12-word mnemonic should have 12 words")
	assert.True(t, ValidatePhrase(mnemonic), "generated mnemonic should be valid")
}

func TestGenerateMnemonic_24Words(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic24Words)
	require.NoError(t, err)

	words := strings.Fields(mnemonic)
	assert.Len(t, words, 24, "24-word mnemonic should have 24 words")
	assert.True(t, ValidatePhrase(mnemonic), "generated mnemonic should be valid")
}

func TestGenerateMnemonic_InvalidEntropy(t *testing.T) {
	_, err := GenerateMnemonic(64)
	assert.ErrorIs(t, err, ErrInvalidEntropy)

	_, err = GenerateMnemonic(192)
	assert.ErrorIs(t, err, ErrInvalidEntropy)
}

func TestValidatePhrase(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		valid  bool
	}{
		{"valid 12-word", abandonPhrase, true},
		{"dev phrase", devPhrase, true},
		{"extra whitespace", "  bottom drive obey lake curtain smoke\tbasket hold race lonely fit walk \n", true},
		{"upper case", strings.ToUpper(devPhrase), true},
		{"invalid words", "foo bar baz qux quux corge grault garply waldo fred plugh xyzzy", false},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", false},
		{"wrong word count", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhrase(tt.phrase))
		})
	}
}

// --- Derivation tests ---

func TestMiniSecretFromPhrase_DevVector(t *testing.T) {
	mini, err := MiniSecretFromPhrase(devPhrase, "")
	require.NoError(t, err)
	assert.Equal(t, "fac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e", hex.EncodeToString(mini[:]))
}

func TestKeypairFromPhrase_DevVector(t *testing.T) {
	kp, err := KeypairFromPhrase(devPhrase, "")
	require.NoError(t, err)
	assert.Equal(t, "0x46ebddef8cd9bb167dc30878d7113b7e168e6f0646beffd77d69d39bad76b47a", kp.PublicKeyHex())
}

func TestKeypairFromPhrase_Deterministic(t *testing.T) {
	kp1, err := KeypairFromPhrase(abandonPhrase, "")
	require.NoError(t, err)

	kp2, err := KeypairFromPhrase(abandonPhrase, "")
	require.NoError(t, err)

	assert.Equal(t, kp1.PublicKey(), kp2.PublicKey(), "same phrase should produce same public key")
}

func TestKeypairFromPhrase_PasswordChangesKey(t *testing.T) {
	kp1, err := KeypairFromPhrase(abandonPhrase, "")
	require.NoError(t, err)

	kp2, err := KeypairFromPhrase(abandonPhrase, "secret")
	require.NoError(t, err)

	assert.NotEqual(t, kp1.PublicKey(), kp2.PublicKey())
}

func TestKeypairFromPhrase_Invalid(t *testing.T) {
	_, err := KeypairFromPhrase("not a recovery phrase", "")
	assert.ErrorIs(t, err, ErrInvalidPhrase)

	_, err = KeypairFromPhrase("", "")
	assert.ErrorIs(t, err, ErrInvalidPhrase)
}

// --- Signature tests ---

func TestSignVerify(t *testing.T) {
	kp, err := KeypairFromPhrase(devPhrase, "")
	require.NoError(t, err)

	msg := []byte("operation bytes")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)

	assert.True(t, Verify(kp.PublicKey(), msg, sig))
	assert.False(t, Verify(kp.PublicKey(), []byte("operation bytez"), sig), "different message must not verify")
}

func TestVerify_WrongKey(t *testing.T) {
	signer, err := KeypairFromPhrase(devPhrase, "")
	require.NoError(t, err)
	other, err := KeypairFromPhrase(abandonPhrase, "")
	require.NoError(t, err)

	msg := []byte{0x04, 0x01, 0x02}
	sig, err := signer.Sign(msg)
	require.NoError(t, err)

	assert.False(t, Verify(other.PublicKey(), msg, sig))
}

func TestVerify_MalformedSignature(t *testing.T) {
	kp, err := KeypairFromPhrase(devPhrase, "")
	require.NoError(t, err)

	var zero [SignatureSize]byte
	assert.False(t, Verify(kp.PublicKey(), []byte("x"), zero), "unmarked signature must not verify")
}

func TestSign_NonceRandomized(t *testing.T) {
	kp, err := KeypairFromPhrase(devPhrase, "")
	require.NoError(t, err)

	msg := []byte("same message")
	s1, err := kp.Sign(msg)
	require.NoError(t, err)
	s2, err := kp.Sign(msg)
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.True(t, Verify(kp.PublicKey(), msg, s1))
	assert.True(t, Verify(kp.PublicKey(), msg, s2))
}
