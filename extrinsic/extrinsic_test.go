package extrinsic

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/bitfsorg/extrinsic-go/codec"
	"github.com/bitfsorg/extrinsic-go/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

const devPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

func testKeypair(t *testing.T) *wallet.Keypair {
	t.Helper()
	kp, err := wallet.KeypairFromPhrase(devPhrase, "")
	require.NoError(t, err)
	return kp
}

func seqKey(start byte) PublicKey {
	var k PublicKey
	for i := range k {
		k[i] = start + byte(i)
	}
	return k
}

func allOperations() []Operation {
	return []Operation{
		Transfer{From: seqKey(0x01), To: seqKey(0x40), Amount: codec.NewAmount(5)},
		Upgrade{Code: []byte{0x00, 0x61, 0x73, 0x6d, 0x01}},
		Upgrade{Code: bytes.Repeat([]byte{0xab}, 70)},
		SetFee{Amount: codec.NewAmount(1)},
		SetReward{Amount: codec.NewAmount(1 << 40)},
		Mint{To: seqKey(0x80), Amount: codec.NewAmount(1000)},
	}
}

// --- Operation encoding tests ---

func TestEncodeOperation_MintVector(t *testing.T) {
	dest := seqKey(0x01)
	enc, err := EncodeOperation(Mint{To: dest, Amount: codec.NewAmount(1000)})
	require.NoError(t, err)

	want := "04" + hex.EncodeToString(dest[:]) + "e8030000000000000000000000000000"
	assert.Equal(t, want, hex.EncodeToString(enc))
}

func TestEncodeOperation_TagIsDeclarationIndex(t *testing.T) {
	for _, op := range allOperations() {
		enc, err := EncodeOperation(op)
		require.NoError(t, err)
		assert.Equal(t, byte(op.Tag()), enc[0], op.Tag().String())
	}
	assert.Equal(t, Tag(0), TagTransfer)
	assert.Equal(t, Tag(4), TagMint)
}

func TestEncodeOperation_Layouts(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		size int
	}{
		{"transfer", Transfer{}, 1 + 32 + 32 + 16},
		{"upgrade empty", Upgrade{}, 1 + 1},
		{"upgrade 64 bytes", Upgrade{Code: make([]byte, 64)}, 1 + 2 + 64},
		{"set fee", SetFee{}, 1 + 16},
		{"set reward", SetReward{}, 1 + 16},
		{"mint", Mint{}, 1 + 32 + 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := EncodeOperation(tt.op)
			require.NoError(t, err)
			assert.Len(t, enc, tt.size)
		})
	}
}

func TestEncodeOperation_Nil(t *testing.T) {
	_, err := EncodeOperation(nil)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestOperationRoundTrip(t *testing.T) {
	for _, op := range allOperations() {
		t.Run(op.Tag().String(), func(t *testing.T) {
			enc, err := EncodeOperation(op)
			require.NoError(t, err)

			got, err := DecodeOperation(enc)
			require.NoError(t, err)
			assert.Equal(t, op, got)

			again, err := EncodeOperation(got)
			require.NoError(t, err)
			assert.Equal(t, enc, again, "encoding must be deterministic")
		})
	}
}

func TestDecodeOperation_Errors(t *testing.T) {
	mint, err := EncodeOperation(Mint{To: seqKey(1), Amount: codec.NewAmount(7)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      []byte
		wantErr error
	}{
		{"empty", nil, codec.ErrTruncated},
		{"unknown tag", []byte{5}, codec.ErrUnknownDiscriminant},
		{"truncated mint", mint[:len(mint)-1], codec.ErrTruncated},
		{"trailing byte", append(append([]byte{}, mint...), 0), codec.ErrTrailingBytes},
		{"upgrade length past end", []byte{1, 10 << 2, 1}, codec.ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOperation(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, codec.ErrDecode)
		})
	}
}

// --- Public key tests ---

func TestParsePublicKey(t *testing.T) {
	want := seqKey(0x10)
	h := hex.EncodeToString(want[:])

	got, err := ParsePublicKey(h)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParsePublicKey("0x" + h)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "0x"+h, got.String())

	_, err = ParsePublicKey(h[:62])
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	assert.ErrorIs(t, err, codec.ErrEncodingInput)

	_, err = ParsePublicKey("zz")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

// --- Extrinsic tests ---

func TestBuild_MintWireLayout(t *testing.T) {
	kp := testKeypair(t)
	dest := seqKey(0x01)
	op := Mint{To: dest, Amount: codec.NewAmount(1000)}

	x, err := Build(op, kp)
	require.NoError(t, err)

	enc, err := x.Encode()
	require.NoError(t, err)
	require.Len(t, enc, 1+32+16+1+64+32)

	opBytes, err := EncodeOperation(op)
	require.NoError(t, err)
	assert.Equal(t, opBytes, enc[:49], "operation bytes lead")
	assert.Equal(t, byte(1), enc[49], "presence byte")
	assert.Equal(t, x.Verification.Signature[:], enc[50:114])
	pub := kp.PublicKey()
	assert.Equal(t, pub[:], enc[114:])

	assert.NoError(t, x.VerifySignature())
}

func TestExtrinsic_HexRoundTrip(t *testing.T) {
	kp := testKeypair(t)
	for _, op := range allOperations() {
		t.Run(op.Tag().String(), func(t *testing.T) {
			x, err := Build(op, kp)
			require.NoError(t, err)

			h, err := x.Hex()
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(h, "0x"))
			assert.Equal(t, strings.ToLower(h), h)

			got, err := DecodeHex(h)
			require.NoError(t, err)
			assert.Equal(t, x, got)
			assert.NoError(t, got.VerifySignature())
		})
	}
}

func TestExtrinsic_Unsigned(t *testing.T) {
	x := &Extrinsic{Operation: SetFee{Amount: codec.NewAmount(3)}}
	enc, err := x.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0), enc[len(enc)-1])
	assert.Len(t, enc, 1+16+1)

	got, err := Decode(enc)
	require.NoError(t, err)
	assert.Nil(t, got.Verification)
	assert.ErrorIs(t, got.VerifySignature(), ErrUnsigned)
}

func TestExtrinsic_Hash(t *testing.T) {
	x, err := Build(SetReward{Amount: codec.NewAmount(9)}, testKeypair(t))
	require.NoError(t, err)

	enc, err := x.Encode()
	require.NoError(t, err)

	h, err := x.Hash()
	require.NoError(t, err)
	assert.Equal(t, blake2b.Sum256(enc), h)
}

func TestDecode_Errors(t *testing.T) {
	x, err := Build(SetFee{Amount: codec.NewAmount(3)}, testKeypair(t))
	require.NoError(t, err)
	enc, err := x.Encode()
	require.NoError(t, err)

	badOption := append([]byte{}, enc...)
	badOption[17] = 2

	tests := []struct {
		name    string
		in      []byte
		wantErr error
	}{
		{"missing option", enc[:17], codec.ErrTruncated},
		{"bad option tag", badOption, codec.ErrUnknownDiscriminant},
		{"truncated signature", enc[:17+1+30], codec.ErrTruncated},
		{"truncated public key", enc[:len(enc)-1], codec.ErrTruncated},
		{"trailing", append(append([]byte{}, enc...), 0xff), codec.ErrTrailingBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = DecodeHex("0xnothex")
	assert.ErrorIs(t, err, ErrInvalidHex)
}

// --- Signature tests ---

func TestSign_TamperSensitivity(t *testing.T) {
	kp := testKeypair(t)
	op := Transfer{From: PublicKey(kp.PublicKey()), To: seqKey(0x20), Amount: codec.NewAmount(250)}

	sig, err := Sign(kp, op)
	require.NoError(t, err)
	require.True(t, Verify(kp.PublicKey(), op, sig))

	msg, err := EncodeOperation(op)
	require.NoError(t, err)

	for i := range msg {
		tampered := append([]byte{}, msg...)
		tampered[i] ^= 0x01
		assert.False(t, wallet.Verify(kp.PublicKey(), tampered, sig), "byte %d flipped", i)
	}
}

func TestSign_CoversOperationOnly(t *testing.T) {
	kp := testKeypair(t)
	op := Mint{To: seqKey(0x33), Amount: codec.NewAmount(42)}

	x, err := Build(op, kp)
	require.NoError(t, err)

	msg, err := EncodeOperation(op)
	require.NoError(t, err)
	assert.True(t, wallet.Verify(kp.PublicKey(), msg, x.Verification.Signature))

	full, err := x.Encode()
	require.NoError(t, err)
	assert.False(t, wallet.Verify(kp.PublicKey(), full, x.Verification.Signature))
}

func TestVerifySignature_WrongKey(t *testing.T) {
	kp := testKeypair(t)
	x, err := Build(SetFee{Amount: codec.NewAmount(1)}, kp)
	require.NoError(t, err)

	x.Verification.PublicKey = seqKey(0x01)
	assert.ErrorIs(t, x.VerifySignature(), ErrBadSignature)
}

func TestBuild_NilSigner(t *testing.T) {
	_, err := Build(SetFee{}, nil)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "mint", TagMint.String())
	assert.Equal(t, "set_fee", TagSetFee.String())
	assert.Equal(t, "tag(9)", Tag(9).String())
}
