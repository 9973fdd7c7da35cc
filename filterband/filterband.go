// Package filterband isolates an instrument's frequency range in the time
// domain: STFT, zero the out-of-band bins, inverse transform, overlap-add.
package filterband

import (
	"strings"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/model"
	"github.com/notefall/charter/spectral"
	"github.com/notefall/charter/util"
)

// ForInstrument returns the default band for an instrument name. Unknown
// names get a wide default band rather than an error.
func ForInstrument(instrument string) model.FrequencyBand {
	switch strings.ToLower(instrument) {
	case "vocals":
		return model.FrequencyBand{Name: "vocals", LowHz: 200, HighHz: 4000}
	case "bass":
		return model.FrequencyBand{Name: "bass", LowHz: 40, HighHz: 250}
	case "drums":
		return model.FrequencyBand{Name: "drums", LowHz: 30, HighHz: 5000}
	case "lead":
		return model.FrequencyBand{Name: "lead", LowHz: 400, HighHz: 8000}
	default:
		return model.FrequencyBand{Name: "default", LowHz: 40, HighHz: 8000}
	}
}

// Bandpass filters samples to the band and returns a new slice of the same
// length, peak-normalized unless silent. Inputs shorter than one analysis
// frame come back as silence.
func Bandpass(samples []float64, sampleRate int, band model.FrequencyBand) []float64 {
	out := make([]float64, len(samples))
	fftSize := constants.FFTSize
	hop := constants.HopSize
	window := spectral.HannWindow(fftSize)
	freqRes := float64(sampleRate) / float64(fftSize)

	for start := 0; start+fftSize <= len(samples); start += hop {
		spectrum := spectral.TransformFrame(samples[start:start+fftSize], fftSize, window)

		for k := range spectrum {
			freq := float64(k) * freqRes
			if freq < band.LowHz || freq > band.HighHz {
				spectrum[k] = 0
			}
		}

		frame := spectral.InverseTransform(spectrum)
		for j, v := range frame {
			if start+j < len(out) {
				out[start+j] += v
			}
		}
	}

	if max := util.MaxAbs(out); max > 0 {
		for i := range out {
			out[i] /= max
		}
	}
	return out
}
