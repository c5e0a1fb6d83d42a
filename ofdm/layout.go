package ofdm

import "github.com/jeongseonghan/software-modem/qam"

// Tag classifies one subcarrier slot within an OFDM symbol.
type Tag int

const (
	// Null subcarriers carry nothing: the DC bin and the edge bin.
	Null Tag = iota
	// Pilot subcarriers carry the known reference value.
	Pilot
	// Data subcarriers carry payload constellation points.
	Data
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case Null:
		return "Null"
	case Pilot:
		return "Pilot"
	case Data:
		return "Data"
	default:
		return "Unknown"
	}
}

// Layout is the subcarrier classification for one (N, P) pair. It is a pure
// function of its inputs: a modulator and demodulator built with the same
// parameters derive bit-identical layouts, which is what keeps the two ends
// of a link compatible. Immutable after construction.
type Layout struct {
	tags         []Tag
	pilotIndices []int
	dataIndices  []int
}

// NewLayout classifies the N subcarrier indices for pilot spacing P.
// Index 0 (DC) and index N-1 (edge guard) are Null. Among the remaining
// indices, every index divisible by P is a Pilot and the rest carry Data.
func NewLayout(numSubcarriers, pilotEvery int) *Layout {
	l := &Layout{tags: make([]Tag, numSubcarriers)}

	for i := 1; i < numSubcarriers-1; i++ {
		if i%pilotEvery == 0 {
			l.tags[i] = Pilot
			l.pilotIndices = append(l.pilotIndices, i)
		} else {
			l.tags[i] = Data
			l.dataIndices = append(l.dataIndices, i)
		}
	}

	return l
}

// Len returns the number of subcarriers.
func (l *Layout) Len() int {
	return len(l.tags)
}

// Tag returns the classification of subcarrier idx.
func (l *Layout) Tag(idx int) Tag {
	return l.tags[idx]
}

// PilotIndices returns the pilot subcarrier indices in ascending order.
// The caller must not modify the returned slice.
func (l *Layout) PilotIndices() []int {
	return l.pilotIndices
}

// DataIndices returns the data subcarrier indices in ascending order.
// The caller must not modify the returned slice.
func (l *Layout) DataIndices() []int {
	return l.dataIndices
}

// DataBits returns the payload capacity in bits for the given order.
func (l *Layout) DataBits(order qam.Order) int {
	return len(l.dataIndices) * order.BitsPerSymbol()
}

// DataBytes returns the payload capacity in whole bytes for the given order.
func (l *Layout) DataBytes(order qam.Order) int {
	return l.DataBits(order) / 8
}
