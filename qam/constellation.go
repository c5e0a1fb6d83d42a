// Package qam maps byte streams to points on square Gray-coded QAM
// constellations and back. Bit order is MSB-first, both when slicing bytes
// into symbol groups and when packing demapped groups into bytes; the same
// convention must be used on both ends of a link.
package qam

import (
	"fmt"
	"math"
)

// Order identifies a supported constellation size. The value is the number
// of bits carried per symbol.
type Order int

const (
	QAM4   Order = 2 // QPSK, 2 bits per symbol
	QAM16  Order = 4 // 4 bits per symbol
	QAM64  Order = 6 // 6 bits per symbol
	QAM256 Order = 8 // 8 bits per symbol
)

// BitsPerSymbol returns the number of bits per constellation symbol.
func (o Order) BitsPerSymbol() int {
	return int(o)
}

// Points returns the number of points in the constellation.
func (o Order) Points() int {
	return 1 << uint(o)
}

// String returns the order name.
func (o Order) String() string {
	switch o {
	case QAM4:
		return "QAM4"
	case QAM16:
		return "QAM16"
	case QAM64:
		return "QAM64"
	case QAM256:
		return "QAM256"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

func (o Order) valid() bool {
	switch o {
	case QAM4, QAM16, QAM64, QAM256:
		return true
	}
	return false
}

// Modem holds the constellation table for one Order. The table is built
// once and never mutated, so a Modem may be shared across goroutines.
type Modem struct {
	order  Order
	points []complex128
}

// NewModem builds the constellation for the given order. Orders outside the
// supported set are rejected.
func NewModem(order Order) (*Modem, error) {
	if !order.valid() {
		return nil, fmt.Errorf("%w: unsupported QAM order %d", ErrInvalidConfig, int(order))
	}
	m := &Modem{order: order}
	m.generate()
	m.normalize()
	return m, nil
}

// Order returns the modem's constellation order.
func (m *Modem) Order() Order {
	return m.order
}

// generate builds a square constellation with per-axis Gray coding: the
// grid cell at (row, col) carries the bit pattern gray(row), gray(col), so
// physically adjacent points differ in exactly one bit. The high half of
// the pattern is the quadrature axis, the low half in-phase.
func (m *Modem) generate() {
	half := m.order.BitsPerSymbol() / 2
	side := 1 << uint(half)
	m.points = make([]complex128, m.order.Points())

	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			grayRow := row ^ (row >> 1)
			grayCol := col ^ (col >> 1)

			x := float64(2*col - side + 1) // odd levels: -3, -1, 1, 3 for side 4
			y := float64(2*row - side + 1)

			m.points[grayRow<<uint(half)|grayCol] = complex(x, y)
		}
	}
}

// normalize scales the table to unit average power so every order transmits
// at the same level.
func (m *Modem) normalize() {
	var avgPower float64
	for _, p := range m.points {
		avgPower += real(p)*real(p) + imag(p)*imag(p)
	}
	avgPower /= float64(len(m.points))

	scale := 1.0 / math.Sqrt(avgPower)
	for i := range m.points {
		m.points[i] = complex(real(m.points[i])*scale, imag(m.points[i])*scale)
	}
}

// Map maps a bit group (one byte per bit, 0 or 1) to a constellation point.
// The group must be exactly BitsPerSymbol bits.
func (m *Modem) Map(bits []byte) (complex128, error) {
	if len(bits) != m.order.BitsPerSymbol() {
		return 0, fmt.Errorf("%w: got %d bits, need %d", ErrInvalidBitWidth, len(bits), m.order.BitsPerSymbol())
	}
	return m.points[bitsToIndex(bits)], nil
}

// Demap returns the bit group of the constellation point closest to symbol.
// It is a hard decision: any input, however noisy, demaps to some point.
func (m *Modem) Demap(symbol complex128) []byte {
	minDist := math.MaxFloat64
	minIdx := 0

	for i, p := range m.points {
		d := real(symbol-p)*real(symbol-p) + imag(symbol-p)*imag(symbol-p)
		if d < minDist {
			minDist = d
			minIdx = i
		}
	}

	return indexToBits(minIdx, m.order.BitsPerSymbol())
}

// Modulate slices data into an MSB-first bitstream, groups it into
// BitsPerSymbol-bit chunks (zero-padding the final chunk), and maps each
// chunk to a constellation point.
func (m *Modem) Modulate(data []byte) []complex128 {
	bps := m.order.BitsPerSymbol()
	bits := bytesToBits(data)
	if rem := len(bits) % bps; rem != 0 {
		bits = append(bits, make([]byte, bps-rem)...)
	}

	symbols := make([]complex128, len(bits)/bps)
	for i := range symbols {
		symbols[i] = m.points[bitsToIndex(bits[i*bps:(i+1)*bps])]
	}
	return symbols
}

// Demodulate demaps each point, concatenates the bit groups MSB-first, and
// packs them into bytes, zero-padding the final byte if the bit count is
// not a multiple of 8.
func (m *Modem) Demodulate(symbols []complex128) []byte {
	bps := m.order.BitsPerSymbol()
	bits := make([]byte, 0, len(symbols)*bps)
	for _, s := range symbols {
		bits = append(bits, m.Demap(s)...)
	}
	return bitsToBytes(bits)
}

func bitsToIndex(bits []byte) int {
	idx := 0
	for _, b := range bits {
		idx = (idx << 1) | int(b&1)
	}
	return idx
}

func indexToBits(idx, numBits int) []byte {
	bits := make([]byte, numBits)
	for i := numBits - 1; i >= 0; i-- {
		bits[i] = byte(idx & 1)
		idx >>= 1
	}
	return bits
}

func bytesToBits(data []byte) []byte {
	bits := make([]byte, len(data)*8)
	for i, b := range data {
		for j := 7; j >= 0; j-- {
			bits[i*8+(7-j)] = (b >> uint(j)) & 1
		}
	}
	return bits
}

func bitsToBytes(bits []byte) []byte {
	numBytes := (len(bits) + 7) / 8
	data := make([]byte, numBytes)
	for i, b := range bits {
		if b&1 != 0 {
			data[i/8] |= 1 << uint(7-i%8)
		}
	}
	return data
}
