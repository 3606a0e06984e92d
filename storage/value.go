// Package storage interprets raw state_getStorage results.
//
// The node answers a storage query with a JSON string holding 0x-prefixed
// hex, e.g. "0x0a000000000000000000000000000000", or with null when the
// key is unset. Keys are opaque bytes addressed exactly.
package storage

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitfsorg/extrinsic-go/codec"
)

const hexPrefix = "0x"

// EncodeKey returns the 0x-prefixed hex form of key, the parameter
// passed to state_getStorage.
func EncodeKey(key []byte) string {
	return hexPrefix + hex.EncodeToString(key)
}

// ParseKey parses a hex storage key typed by a user, with or without 0x.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), hexPrefix)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return key, nil
}

// DecodeValue returns the bytes carried by a raw storage result. raw is
// the result exactly as received, JSON quotes included.
func DecodeValue(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "null" {
		return nil, ErrValueNotFound
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return nil, fmt.Errorf("%w: storage result is not a JSON string: %q", codec.ErrDecode, raw)
	}
	s := raw[1 : len(raw)-1]
	if !strings.HasPrefix(s, hexPrefix) {
		return nil, fmt.Errorf("%w: storage result lacks %s prefix: %q", codec.ErrDecode, hexPrefix, s)
	}

	b, err := hex.DecodeString(s[len(hexPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: storage result hex: %w", codec.ErrDecode, err)
	}
	return b, nil
}

// DecodeU128 decodes a raw storage result holding a 128-bit little-endian
// amount. Anything other than exactly 16 bytes is a decode error.
func DecodeU128(raw string) (codec.Amount, error) {
	b, err := DecodeValue(raw)
	if err != nil {
		return codec.Amount{}, err
	}
	return codec.DecodeU128(b)
}
