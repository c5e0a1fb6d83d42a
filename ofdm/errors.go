package ofdm

import "errors"

var (
	// ErrInvalidConfig is returned by the constructors for configurations
	// that cannot produce a working modulator/demodulator pair.
	ErrInvalidConfig = errors.New("ofdm: invalid configuration")

	// ErrCapacityExceeded is returned when a payload does not fit in one
	// symbol's data subcarriers.
	ErrCapacityExceeded = errors.New("ofdm: payload exceeds symbol capacity")

	// ErrLengthMismatch is returned when a caller-provided sample buffer is
	// not exactly SymbolLength samples.
	ErrLengthMismatch = errors.New("ofdm: buffer length mismatch")
)
