package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is the umbrella error for every malformed-input failure.
	// All decode sentinels below match it with errors.Is.
	ErrDecode = errors.New("codec: decode failed")

	// ErrTruncated indicates the input ended before the value was complete.
	ErrTruncated = fmt.Errorf("%w: input truncated", ErrDecode)

	// ErrUnknownDiscriminant indicates a variant or option tag outside the declared range.
	ErrUnknownDiscriminant = fmt.Errorf("%w: unknown discriminant", ErrDecode)

	// ErrTrailingBytes indicates input remained after a complete value was read.
	ErrTrailingBytes = fmt.Errorf("%w: trailing bytes", ErrDecode)

	// ErrNonCanonical indicates a compact integer not in its smallest form.
	ErrNonCanonical = fmt.Errorf("%w: non-canonical compact integer", ErrDecode)

	// ErrOverflow indicates a compact integer wider than 64 bits.
	ErrOverflow = fmt.Errorf("%w: integer overflows 64 bits", ErrDecode)

	// ErrEncodingInput indicates a value that cannot be represented on the wire.
	ErrEncodingInput = errors.New("codec: value outside representable range")
)
