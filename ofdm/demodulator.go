package ofdm

import (
	"fmt"

	"github.com/jeongseonghan/software-modem/qam"
)

// Demodulator recovers payload bytes from one received OFDM symbol per
// call. It must be built with the same NumSubcarriers, CyclicPrefixLength,
// PilotEvery, and Order as the modulator that produced the samples; nothing
// in the sample stream lets it detect a mismatch. Like Modulator, one
// instance per goroutine when processing symbols in parallel.
type Demodulator struct {
	cfg    Config
	layout *Layout
	modem  *qam.Modem
	engine TransformEngine
	eq     *equalizer
}

// NewDemodulator builds a demodulator for the given configuration.
func NewDemodulator(cfg Config) (*Demodulator, error) {
	layout, modem, engine, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	return &Demodulator{
		cfg:    cfg,
		layout: layout,
		modem:  modem,
		engine: engine,
		eq:     newEqualizer(layout),
	}, nil
}

// SymbolLength returns the number of samples one received symbol occupies,
// NumSubcarriers + CyclicPrefixLength. Identical to the paired modulator's.
func (d *Demodulator) SymbolLength() int {
	return d.cfg.NumSubcarriers + d.cfg.CyclicPrefixLength
}

// DataCapacity returns the payload bytes recovered per symbol.
func (d *Demodulator) DataCapacity() int {
	return d.layout.DataBytes(d.cfg.Order)
}

// Layout returns the demodulator's subcarrier layout.
func (d *Demodulator) Layout() *Layout {
	return d.layout
}

// DemodulateSymbolFromBuffer recovers DataCapacity bytes from one symbol.
// samples must be exactly SymbolLength long. The cyclic prefix is discarded
// without being read; it exists only to absorb multipath spread ahead of
// the useful window. Noise never produces an error, only wrong bytes: a
// hard-decision demodulator cannot tell a corrupted symbol from a valid
// one. Payloads shorter than capacity come back zero-padded; trailing
// padding is the caller's to strip.
func (d *Demodulator) DemodulateSymbolFromBuffer(samples []complex128) ([]byte, error) {
	spectrum, err := d.spectrum(samples)
	if err != nil {
		return nil, err
	}

	d.eq.equalize(spectrum)

	dataIndices := d.layout.DataIndices()
	points := make([]complex128, len(dataIndices))
	for i, idx := range dataIndices {
		points[i] = spectrum[idx]
	}

	return d.modem.Demodulate(points)[:d.DataCapacity()], nil
}

// PilotSNR reports the per-pilot SNR in dB for one received symbol, in
// ascending pilot index order. A link health probe: the same length rules
// as demodulation, no effect on it.
func (d *Demodulator) PilotSNR(samples []complex128) ([]float64, error) {
	spectrum, err := d.spectrum(samples)
	if err != nil {
		return nil, err
	}
	return d.eq.pilotSNR(spectrum), nil
}

// spectrum strips the cyclic prefix and transforms the useful window to
// the frequency domain.
func (d *Demodulator) spectrum(samples []complex128) ([]complex128, error) {
	if len(samples) != d.SymbolLength() {
		return nil, fmt.Errorf("%w: input is %d samples, need %d", ErrLengthMismatch, len(samples), d.SymbolLength())
	}
	return d.engine.Forward(samples[d.cfg.CyclicPrefixLength:]), nil
}
