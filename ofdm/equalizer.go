package ofdm

import (
	"math"
	"math/cmplx"
)

// equalizer derives a single-tap channel correction from the pilot bins of
// one received spectrum and applies it to the data bins. The gain at each
// pilot is H(k) = Y(k) / PilotValue; gains between pilots are linearly
// interpolated, and bins outside the pilot span take the nearest pilot's
// gain. On a distortion-free channel every gain is exactly 1.
type equalizer struct {
	layout *Layout
	gains  []complex128
}

func newEqualizer(layout *Layout) *equalizer {
	return &equalizer{
		layout: layout,
		gains:  make([]complex128, layout.Len()),
	}
}

// estimate fills the per-bin gain table from the pilot bins of spectrum.
func (eq *equalizer) estimate(spectrum []complex128) {
	pilots := eq.layout.PilotIndices()
	if len(pilots) == 0 {
		for i := range eq.gains {
			eq.gains[i] = 1
		}
		return
	}

	for _, idx := range pilots {
		eq.gains[idx] = spectrum[idx] / PilotValue
	}

	// Nearest pilot outside the span, linear interpolation inside.
	for i := 0; i < pilots[0]; i++ {
		eq.gains[i] = eq.gains[pilots[0]]
	}
	for i := pilots[len(pilots)-1] + 1; i < len(eq.gains); i++ {
		eq.gains[i] = eq.gains[pilots[len(pilots)-1]]
	}
	for p := 0; p < len(pilots)-1; p++ {
		k1, k2 := pilots[p], pilots[p+1]
		v1, v2 := eq.gains[k1], eq.gains[k2]
		for k := k1 + 1; k < k2; k++ {
			t := float64(k-k1) / float64(k2-k1)
			eq.gains[k] = complex(
				real(v1)*(1-t)+real(v2)*t,
				imag(v1)*(1-t)+imag(v2)*t,
			)
		}
	}
}

// equalize applies zero-forcing correction to the data bins of spectrum in
// place. Bins whose gain is near zero are left alone rather than blown up.
func (eq *equalizer) equalize(spectrum []complex128) {
	eq.estimate(spectrum)

	for _, idx := range eq.layout.DataIndices() {
		h := eq.gains[idx]
		if cmplx.Abs(h) > 1e-10 {
			spectrum[idx] /= h
		}
	}
}

// pilotSNR reports the SNR in dB at each pilot bin, from the deviation of
// the received pilot from PilotValue. Clamped at 60 dB when the deviation
// is below measurement noise.
func (eq *equalizer) pilotSNR(spectrum []complex128) []float64 {
	pilots := eq.layout.PilotIndices()
	snr := make([]float64, len(pilots))
	for i, idx := range pilots {
		signal := cmplx.Abs(PilotValue)
		noise := cmplx.Abs(spectrum[idx] - PilotValue)
		if noise > 1e-10 {
			snr[i] = 20 * math.Log10(signal/noise)
			if snr[i] > 60 {
				snr[i] = 60
			}
		} else {
			snr[i] = 60
		}
	}
	return snr
}
