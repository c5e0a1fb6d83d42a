package ofdm

import (
	"fmt"

	"github.com/jeongseonghan/software-modem/qam"
)

// Modulator converts payload bytes into one time-domain OFDM symbol per
// call. Construction derives the subcarrier layout and constellation once;
// after that every call is an independent, stateless transform. The
// transform engine keeps scratch buffers, so use one Modulator per
// goroutine when processing symbols in parallel.
type Modulator struct {
	cfg     Config
	layout  *Layout
	modem   *qam.Modem
	engine  TransformEngine
	zeroSym complex128 // point for the all-zero bit group, pads unused data slots
}

// NewModulator builds a modulator for the given configuration.
func NewModulator(cfg Config) (*Modulator, error) {
	layout, modem, engine, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	zeroBits := make([]byte, cfg.Order.BitsPerSymbol())
	zeroSym, err := modem.Map(zeroBits)
	if err != nil {
		return nil, err
	}

	return &Modulator{
		cfg:     cfg,
		layout:  layout,
		modem:   modem,
		engine:  engine,
		zeroSym: zeroSym,
	}, nil
}

// SymbolLength returns the number of samples in one modulated symbol,
// NumSubcarriers + CyclicPrefixLength. Callers allocate output buffers of
// exactly this length.
func (m *Modulator) SymbolLength() int {
	return m.cfg.NumSubcarriers + m.cfg.CyclicPrefixLength
}

// DataCapacity returns the maximum payload bytes one symbol carries.
func (m *Modulator) DataCapacity() int {
	return m.layout.DataBytes(m.cfg.Order)
}

// Layout returns the modulator's subcarrier layout.
func (m *Modulator) Layout() *Layout {
	return m.layout
}

// ModulateBufferAsSymbol modulates data into out, which must be exactly
// SymbolLength samples. Payloads shorter than DataCapacity are padded with
// the zero-bit constellation point; longer payloads fail with
// ErrCapacityExceeded.
func (m *Modulator) ModulateBufferAsSymbol(data []byte, out []complex128) error {
	if len(data) > m.DataCapacity() {
		return fmt.Errorf("%w: %d bytes > %d-byte capacity", ErrCapacityExceeded, len(data), m.DataCapacity())
	}
	if len(out) != m.SymbolLength() {
		return fmt.Errorf("%w: output buffer is %d samples, need %d", ErrLengthMismatch, len(out), m.SymbolLength())
	}

	// Assemble the frequency-domain vector: data points in ascending data
	// index order, pilots on pilot bins, zeros elsewhere.
	spectrum := make([]complex128, m.cfg.NumSubcarriers)

	points := m.modem.Modulate(data)
	for i, idx := range m.layout.DataIndices() {
		if i < len(points) {
			spectrum[idx] = points[i]
		} else {
			spectrum[idx] = m.zeroSym
		}
	}
	for _, idx := range m.layout.PilotIndices() {
		spectrum[idx] = PilotValue
	}

	timeDomain := m.engine.Inverse(spectrum)

	// Cyclic prefix: the tail of the symbol, copied to the front.
	cp := m.cfg.CyclicPrefixLength
	copy(out[:cp], timeDomain[len(timeDomain)-cp:])
	copy(out[cp:], timeDomain)

	return nil
}
