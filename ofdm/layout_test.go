package ofdm

import (
	"testing"

	"github.com/jeongseonghan/software-modem/qam"
)

func TestLayout_EdgesAreNull(t *testing.T) {
	for _, n := range []int{8, 64, 256} {
		l := NewLayout(n, 4)
		if l.Tag(0) != Null {
			t.Errorf("N=%d: index 0 is %s, want Null", n, l.Tag(0))
		}
		if l.Tag(n-1) != Null {
			t.Errorf("N=%d: index %d is %s, want Null", n, n-1, l.Tag(n-1))
		}
	}
}

func TestLayout_PilotRule(t *testing.T) {
	l := NewLayout(64, 4)

	for i := 1; i < 63; i++ {
		want := Data
		if i%4 == 0 {
			want = Pilot
		}
		if l.Tag(i) != want {
			t.Errorf("index %d: got %s, want %s", i, l.Tag(i), want)
		}
	}

	// 1..62 holds 15 multiples of 4, so 47 data subcarriers remain.
	if got := len(l.PilotIndices()); got != 15 {
		t.Errorf("pilot count = %d, want 15", got)
	}
	if got := len(l.DataIndices()); got != 47 {
		t.Errorf("data count = %d, want 47", got)
	}
}

func TestLayout_IndicesAscending(t *testing.T) {
	l := NewLayout(128, 3)

	for name, indices := range map[string][]int{
		"pilot": l.PilotIndices(),
		"data":  l.DataIndices(),
	} {
		for i := 1; i < len(indices); i++ {
			if indices[i] <= indices[i-1] {
				t.Errorf("%s indices not ascending at %d: %v <= %v", name, i, indices[i], indices[i-1])
			}
		}
	}
}

func TestLayout_CapacityFormula(t *testing.T) {
	for _, n := range []int{16, 64, 256} {
		for _, p := range []int{2, 4, 7} {
			l := NewLayout(n, p)
			for _, order := range []qam.Order{qam.QAM4, qam.QAM16, qam.QAM64, qam.QAM256} {
				wantBits := len(l.DataIndices()) * order.BitsPerSymbol()
				if got := l.DataBits(order); got != wantBits {
					t.Errorf("N=%d P=%d %s: DataBits = %d, want %d", n, p, order, got, wantBits)
				}
				if got := l.DataBytes(order); got != wantBits/8 {
					t.Errorf("N=%d P=%d %s: DataBytes = %d, want %d", n, p, order, got, wantBits/8)
				}
			}
		}
	}
}

func TestLayout_Deterministic(t *testing.T) {
	a := NewLayout(64, 4)
	b := NewLayout(64, 4)

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d != %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.Tag(i) != b.Tag(i) {
			t.Errorf("index %d: %s != %s", i, a.Tag(i), b.Tag(i))
		}
	}
}
