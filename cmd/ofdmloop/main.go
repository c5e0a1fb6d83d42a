// Command ofdmloop modulates a message into one OFDM symbol and
// demodulates it back through a noiseless loopback, printing the derived
// link parameters along the way.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"

	"github.com/jeongseonghan/software-modem/ofdm"
	"github.com/jeongseonghan/software-modem/qam"
)

func main() {
	numSubcarriers := flag.Int("subcarriers", 64, "Number of subcarriers (power of two)")
	prefixLen := flag.Int("cyclic-prefix", 4, "Cyclic prefix length in samples")
	pilotEvery := flag.Int("pilot-every", 4, "Pilot subcarrier spacing")
	orderName := flag.String("order", "QAM16", "Constellation order (QAM4, QAM16, QAM64, QAM256)")
	message := flag.String("message", "Hello, OFDM!", "Message to round-trip")
	flag.Parse()

	order, err := parseOrder(*orderName)
	if err != nil {
		log.Fatalf("Invalid order: %v", err)
	}

	cfg := ofdm.Config{
		NumSubcarriers:     *numSubcarriers,
		CyclicPrefixLength: *prefixLen,
		PilotEvery:         *pilotEvery,
		Order:              order,
	}

	mod, err := ofdm.NewModulator(cfg)
	if err != nil {
		log.Fatalf("Failed to create modulator: %v", err)
	}
	demod, err := ofdm.NewDemodulator(cfg)
	if err != nil {
		log.Fatalf("Failed to create demodulator: %v", err)
	}

	fmt.Printf("Symbol length:  %d samples\n", mod.SymbolLength())
	fmt.Printf("Data capacity:  %d bytes\n", mod.DataCapacity())
	fmt.Printf("Pilot bins:     %v\n", mod.Layout().PilotIndices())

	samples := make([]complex128, mod.SymbolLength())
	if err := mod.ModulateBufferAsSymbol([]byte(*message), samples); err != nil {
		log.Fatalf("Modulation failed: %v", err)
	}

	recovered, err := demod.DemodulateSymbolFromBuffer(samples)
	if err != nil {
		log.Fatalf("Demodulation failed: %v", err)
	}

	snr, err := demod.PilotSNR(samples)
	if err != nil {
		log.Fatalf("Pilot SNR failed: %v", err)
	}

	fmt.Printf("Pilot SNR (dB): %.1f\n", snr)
	fmt.Printf("Recovered:      %q\n", bytes.TrimRight(recovered, "\x00"))
}

func parseOrder(name string) (qam.Order, error) {
	switch name {
	case "QAM4", "QPSK":
		return qam.QAM4, nil
	case "QAM16":
		return qam.QAM16, nil
	case "QAM64":
		return qam.QAM64, nil
	case "QAM256":
		return qam.QAM256, nil
	default:
		return 0, fmt.Errorf("unknown order %q", name)
	}
}
