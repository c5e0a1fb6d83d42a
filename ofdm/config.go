// Package ofdm assembles QAM constellation points into OFDM symbols and
// recovers them. One call processes exactly one symbol: NumSubcarriers
// frequency-domain slots, transformed to time domain and framed with a
// cyclic prefix. Sequencing symbols into a transmission, symbol timing, and
// everything on the RF side of the sample buffer are caller concerns.
package ofdm

import (
	"fmt"

	"github.com/jeongseonghan/software-modem/qam"
)

// PilotValue is the known reference carried on every pilot subcarrier. The
// demodulator divides received pilots by it to estimate the channel gain.
var PilotValue = complex(1, 0)

// Config describes one end of an OFDM link. A modulator and demodulator
// must be built from matching NumSubcarriers, CyclicPrefixLength,
// PilotEvery, and Order, with equivalent engines, or recovered bytes are
// garbage; the sample stream carries nothing that would let either side
// detect the mismatch.
type Config struct {
	// NumSubcarriers is the frequency-domain vector length N. Must be a
	// size the engine supports; the built-in engine takes powers of two.
	NumSubcarriers int

	// CyclicPrefixLength is the number of tail samples copied to the front
	// of each time-domain symbol. Must be less than NumSubcarriers.
	CyclicPrefixLength int

	// PilotEvery inserts a pilot at every PilotEvery-th non-edge
	// subcarrier index.
	PilotEvery int

	// Order selects the QAM constellation.
	Order qam.Order

	// Engine is the transform implementation. Nil selects the built-in
	// FFT. A custom engine must be deterministic and side-effect-free and
	// keep the 1/N scaling on Inverse.
	Engine TransformEngine
}

// validate checks the config and derives the layout, modem, and engine
// shared by Modulator and Demodulator.
func (c Config) validate() (*Layout, *qam.Modem, TransformEngine, error) {
	if c.NumSubcarriers < 8 {
		return nil, nil, nil, fmt.Errorf("%w: need at least 8 subcarriers, got %d", ErrInvalidConfig, c.NumSubcarriers)
	}
	if c.CyclicPrefixLength < 0 || c.CyclicPrefixLength >= c.NumSubcarriers {
		return nil, nil, nil, fmt.Errorf("%w: cyclic prefix length %d must be in [0, %d)", ErrInvalidConfig, c.CyclicPrefixLength, c.NumSubcarriers)
	}
	if c.PilotEvery < 1 {
		return nil, nil, nil, fmt.Errorf("%w: pilot spacing %d must be >= 1", ErrInvalidConfig, c.PilotEvery)
	}

	modem, err := qam.NewModem(c.Order)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	layout := NewLayout(c.NumSubcarriers, c.PilotEvery)
	if layout.DataBits(c.Order) < 1 {
		return nil, nil, nil, fmt.Errorf("%w: layout (N=%d, P=%d) has no data subcarriers", ErrInvalidConfig, c.NumSubcarriers, c.PilotEvery)
	}

	engine := c.Engine
	if engine == nil {
		engine, err = NewFFT(c.NumSubcarriers)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if engine.Len() != c.NumSubcarriers {
		return nil, nil, nil, fmt.Errorf("%w: engine size %d does not match %d subcarriers", ErrInvalidConfig, engine.Len(), c.NumSubcarriers)
	}

	return layout, modem, engine, nil
}
