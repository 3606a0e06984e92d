package codec

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Compact integer tests ---

func TestAppendCompact_Vectors(t *testing.T) {
	tests := []struct {
		value uint64
		want  string
	}{
		{0, "00"},
		{1, "04"},
		{42, "a8"},
		{63, "fc"},
		{64, "0101"},
		{69, "1501"},
		{16383, "fdff"},
		{16384, "02000100"},
		{1<<30 - 1, "feffffff"},
		{1 << 30, "0300000040"},
		{1 << 32, "070000000001"},
		{math.MaxUint64, "13ffffffffffffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := AppendCompact(nil, tt.value)
			assert.Equal(t, tt.want, hex.EncodeToString(got))
			assert.Equal(t, len(got), CompactLen(tt.value))

			v, err := NewDecoder(got).Compact()
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestCompact_RejectsNonCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"zero in two-byte mode", "0100"},
		{"63 in two-byte mode", "fd00"},
		{"zero in four-byte mode", "02000000"},
		{"small value in big mode", "0300000000"},
		{"leading zero byte in big mode", "070000004000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := hex.DecodeString(tt.in)
			_, err := NewDecoder(b).Compact()
			assert.ErrorIs(t, err, ErrNonCanonical)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestCompact_Overflow(t *testing.T) {
	b := append([]byte{0x17}, make([]byte, 9)...)
	_, err := NewDecoder(b).Compact()
	assert.ErrorIs(t, err, ErrOverflow)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCompact_Truncated(t *testing.T) {
	for _, in := range []string{"", "01", "020000", "03000000"} {
		b, _ := hex.DecodeString(in)
		_, err := NewDecoder(b).Compact()
		assert.ErrorIs(t, err, ErrTruncated, "input %q", in)
	}
}

// --- Amount tests ---

func TestEncodeU128_LittleEndian(t *testing.T) {
	assert.Equal(t, "e8030000000000000000000000000000", hex.EncodeToString(EncodeU128(NewAmount(1000))))
	assert.Equal(t, "0a000000000000000000000000000000", hex.EncodeToString(EncodeU128(NewAmount(10))))
	assert.Len(t, EncodeU128(Amount{}), AmountSize)
}

func TestAmount_Max128RoundTrip(t *testing.T) {
	max := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	max.SubUint64(max, 1)

	a, err := AmountFromUint256(max)
	require.NoError(t, err)

	enc := EncodeU128(a)
	assert.Equal(t, "ffffffffffffffffffffffffffffffff", hex.EncodeToString(enc))

	got, err := DecodeU128(enc)
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, "340282366920938463463374607431768211455", got.String())
}

func TestAmountFromUint256_TooWide(t *testing.T) {
	wide := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	_, err := AmountFromUint256(wide)
	assert.ErrorIs(t, err, ErrEncodingInput)

	_, err = AmountFromUint256(nil)
	assert.ErrorIs(t, err, ErrEncodingInput)
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount(" 1000 ")
	require.NoError(t, err)
	v, ok := a.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(1000), v)

	_, err = ParseAmount("-1")
	assert.ErrorIs(t, err, ErrEncodingInput)

	_, err = ParseAmount("ten")
	assert.ErrorIs(t, err, ErrEncodingInput)

	_, err = ParseAmount("340282366920938463463374607431768211456") // 2^128
	assert.ErrorIs(t, err, ErrEncodingInput)
}

func TestAmount_TextRoundTrip(t *testing.T) {
	a := NewAmount(123456789)
	text, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "123456789", string(text))

	var b Amount
	require.NoError(t, b.UnmarshalText(text))
	assert.Equal(t, 0, a.Cmp(b))
}

func TestDecodeU128_WrongLength(t *testing.T) {
	_, err := DecodeU128(make([]byte, 15))
	assert.ErrorIs(t, err, ErrTruncated)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecodeU128(make([]byte, 17))
	assert.ErrorIs(t, err, ErrTrailingBytes)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecodeU128(nil)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecoderAmount_Truncated(t *testing.T) {
	d := NewDecoder(make([]byte, 15))
	_, err := d.Amount()
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, 0, d.Offset(), "failed read must not consume input")
}

// --- Encoder / Decoder tests ---

func TestEncoder_Sequence(t *testing.T) {
	e := NewEncoder()
	e.PutU8(4)
	e.PutFixed([]byte{0xaa, 0xbb}, 2)
	e.PutBytes([]byte{1, 2, 3})
	e.PutOption(true)
	e.PutAmount(NewAmount(1))
	require.NoError(t, e.Err())

	want := "04aabb0c01020301" + "01000000000000000000000000000000"
	assert.Equal(t, want, hex.EncodeToString(e.Bytes()))

	d := NewDecoder(e.Bytes())
	tag, err := d.U8()
	require.NoError(t, err)
	assert.Equal(t, byte(4), tag)

	fixed := make([]byte, 2)
	require.NoError(t, d.Fixed(fixed))
	assert.Equal(t, []byte{0xaa, 0xbb}, fixed)

	b, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	present, err := d.Option()
	require.NoError(t, err)
	assert.True(t, present)

	a, err := d.Amount()
	require.NoError(t, err)
	assert.Equal(t, NewAmount(1), a)

	assert.NoError(t, d.Finish())
}

func TestEncoder_FixedWrongSizeIsSticky(t *testing.T) {
	e := NewEncoder()
	e.PutFixed(make([]byte, 31), 32)
	e.PutU8(1)

	assert.ErrorIs(t, e.Err(), ErrEncodingInput)
	assert.Nil(t, e.Bytes())
}

func TestEncoder_Deterministic(t *testing.T) {
	build := func() []byte {
		e := NewEncoder()
		e.PutU8(1)
		e.PutBytes(make([]byte, 300))
		e.PutAmount(NewAmount(math.MaxUint64))
		return e.Bytes()
	}
	assert.Equal(t, build(), build())
}

func TestDecoder_BytesLengthBeyondInput(t *testing.T) {
	// Declares 10 bytes, supplies 3.
	d := NewDecoder([]byte{10 << 2, 1, 2, 3})
	_, err := d.Bytes()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecoder_BytesHugeDeclaredLength(t *testing.T) {
	b := AppendCompact(nil, math.MaxUint64)
	_, err := NewDecoder(b).Bytes()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecoder_OptionUnknownTag(t *testing.T) {
	_, err := NewDecoder([]byte{2}).Option()
	assert.ErrorIs(t, err, ErrUnknownDiscriminant)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecoder_FinishTrailing(t *testing.T) {
	d := NewDecoder([]byte{1, 2})
	_, err := d.U8()
	require.NoError(t, err)
	assert.ErrorIs(t, d.Finish(), ErrTrailingBytes)
}
