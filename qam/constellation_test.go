package qam

import (
	"bytes"
	"errors"
	"math"
	"math/bits"
	"testing"
)

var allOrders = []Order{QAM4, QAM16, QAM64, QAM256}

func TestMapDemap_AllPoints(t *testing.T) {
	for _, order := range allOrders {
		m, err := NewModem(order)
		if err != nil {
			t.Fatalf("%s: NewModem error: %v", order, err)
		}

		for i := 0; i < order.Points(); i++ {
			groupBits := indexToBits(i, order.BitsPerSymbol())
			symbol, err := m.Map(groupBits)
			if err != nil {
				t.Fatalf("%s point %d: Map error: %v", order, i, err)
			}
			recovered := m.Demap(symbol)

			for j := range groupBits {
				if groupBits[j] != recovered[j] {
					t.Errorf("%s point %d: bit %d mismatch: %d != %d", order, i, j, groupBits[j], recovered[j])
				}
			}
		}
	}
}

func TestNewModem_RejectsUnknownOrders(t *testing.T) {
	for _, order := range []Order{0, 1, 3, 5, 7, 10} {
		if _, err := NewModem(order); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewModem(%d): got %v, want ErrInvalidConfig", int(order), err)
		}
	}
}

func TestMap_InvalidBitWidth(t *testing.T) {
	m, err := NewModem(QAM16)
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{0, 3, 5} {
		if _, err := m.Map(make([]byte, n)); !errors.Is(err, ErrInvalidBitWidth) {
			t.Errorf("Map with %d bits: got %v, want ErrInvalidBitWidth", n, err)
		}
	}
}

func TestUnitAveragePower(t *testing.T) {
	for _, order := range allOrders {
		m, err := NewModem(order)
		if err != nil {
			t.Fatal(err)
		}

		var avgPower float64
		for _, p := range m.points {
			avgPower += real(p)*real(p) + imag(p)*imag(p)
		}
		avgPower /= float64(len(m.points))

		if math.Abs(avgPower-1.0) > 1e-12 {
			t.Errorf("%s: average power %v, want 1.0", order, avgPower)
		}
	}
}

func TestGrayCoding_NeighborsDifferByOneBit(t *testing.T) {
	for _, order := range allOrders {
		m, err := NewModem(order)
		if err != nil {
			t.Fatal(err)
		}

		// Minimum nonzero distance identifies grid neighbors.
		minDist := math.MaxFloat64
		for i := range m.points {
			for j := i + 1; j < len(m.points); j++ {
				d := real(m.points[i]-m.points[j])*real(m.points[i]-m.points[j]) +
					imag(m.points[i]-m.points[j])*imag(m.points[i]-m.points[j])
				if d < minDist {
					minDist = d
				}
			}
		}

		for i := range m.points {
			for j := i + 1; j < len(m.points); j++ {
				d := real(m.points[i]-m.points[j])*real(m.points[i]-m.points[j]) +
					imag(m.points[i]-m.points[j])*imag(m.points[i]-m.points[j])
				if d < minDist*1.001 && bits.OnesCount(uint(i^j)) != 1 {
					t.Errorf("%s: neighbors %d and %d differ in %d bits", order, i, j, bits.OnesCount(uint(i^j)))
				}
			}
		}
	}
}

func TestModulateDemodulate_Bytes(t *testing.T) {
	data := []byte{0xAB, 0xCD, 0xEF, 0x01, 0x80}

	for _, order := range allOrders {
		m, err := NewModem(order)
		if err != nil {
			t.Fatal(err)
		}

		symbols := m.Modulate(data)
		recovered := m.Demodulate(symbols)

		if len(recovered) < len(data) {
			t.Fatalf("%s: recovered %d bytes, want at least %d", order, len(recovered), len(data))
		}
		if !bytes.Equal(recovered[:len(data)], data) {
			t.Errorf("%s: recovered %x, want %x", order, recovered[:len(data)], data)
		}
		for _, b := range recovered[len(data):] {
			if b != 0 {
				t.Errorf("%s: padding byte %#x, want 0", order, b)
			}
		}
	}
}

func TestBytesToBits_BitsToBytes(t *testing.T) {
	data := []byte{0xAB, 0xCD, 0xEF}
	b := bytesToBits(data)

	if len(b) != 24 {
		t.Fatalf("expected 24 bits, got %d", len(b))
	}
	// MSB-first: 0xAB = 1010 1011.
	want := []byte{1, 0, 1, 0, 1, 0, 1, 1}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("bit %d of 0xAB: got %d, want %d", i, b[i], want[i])
		}
	}

	if got := bitsToBytes(b); !bytes.Equal(got, data) {
		t.Errorf("round trip: got %x, want %x", got, data)
	}

	// Partial final byte is zero-padded on the right.
	if got := bitsToBytes([]byte{1, 1, 1}); !bytes.Equal(got, []byte{0xE0}) {
		t.Errorf("partial byte: got %x, want e0", got)
	}
}
