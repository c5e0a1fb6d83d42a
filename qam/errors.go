package qam

import "errors"

var (
	// ErrInvalidConfig is returned when a modem is constructed with an
	// order outside the supported set.
	ErrInvalidConfig = errors.New("qam: invalid configuration")

	// ErrInvalidBitWidth is returned when a bit group presented to Map is
	// not exactly BitsPerSymbol bits.
	ErrInvalidBitWidth = errors.New("qam: invalid bit group width")
)
