package ofdm

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// TransformEngine converts between time and frequency domain over complex
// vectors of one fixed length. Inverse carries the 1/N normalization, so
// Forward(Inverse(x)) and Inverse(Forward(x)) both return x. Both ends of a
// link must use the same engine size and algorithm.
type TransformEngine interface {
	// Len returns the vector length the engine operates on.
	Len() int

	// Forward transforms a time-domain vector of length Len to the
	// frequency domain.
	Forward(x []complex128) []complex128

	// Inverse transforms a frequency-domain vector of length Len to the
	// time domain, scaled by 1/Len.
	Inverse(x []complex128) []complex128
}

// FFT is the built-in TransformEngine, backed by gonum's complex FFT. It
// keeps internal scratch, so a single FFT must not be used from multiple
// goroutines at once.
type FFT struct {
	n   int
	fft *fourier.CmplxFFT
}

// NewFFT creates an engine for power-of-two vector lengths.
func NewFFT(n int) (*FFT, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: FFT size %d is not a power of two", ErrInvalidConfig, n)
	}
	return &FFT{n: n, fft: fourier.NewCmplxFFT(n)}, nil
}

// Len returns the transform size.
func (f *FFT) Len() int {
	return f.n
}

// Forward computes the unnormalized DFT of x.
func (f *FFT) Forward(x []complex128) []complex128 {
	return f.fft.Coefficients(nil, x)
}

// Inverse computes the inverse DFT of x, scaled by 1/Len.
func (f *FFT) Inverse(x []complex128) []complex128 {
	out := f.fft.Sequence(nil, x)
	scale := complex(1.0/float64(f.n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}
