package onset

// Multi-band analysis: one spectrogram pass yields an onset set per
// instrument, so multi-instrument generation never re-filters the signal.

import (
	"github.com/notefall/charter/spectral"
)

// Band edges for the per-instrument envelopes. Drums use the full-spectrum
// flux directly, which tracks percussive attacks better than any band sum.
const (
	bassMaxHz  = 200.0
	vocalMinHz = 200.0
	vocalMaxHz = 3000.0
	leadMinHz  = 500.0
	leadMaxHz  = 5000.0
)

// DetectBands computes per-instrument detections from a shared
// spectrogram. All detections carry the same autocorrelation tempo, taken
// from the full-spectrum flux. The spectrogram is only read.
func DetectBands(sp *spectral.Spectrogram, delta float64) map[string]Detection {
	flux := Flux(sp)
	bpm := bpmFromAutocorrelation(flux, sp.FramesPerSecond())

	n := sp.NumFrames()
	bass := make([]float64, n)
	vocals := make([]float64, n)
	lead := make([]float64, n)

	for t, frame := range sp.Frames {
		for k, mag := range frame {
			f := sp.BinFrequency(k)
			if f <= bassMaxHz {
				bass[t] += mag
			}
			if f >= vocalMinHz && f <= vocalMaxHz {
				vocals[t] += mag
			}
			if f >= leadMinHz && f <= leadMaxHz {
				lead[t] += mag
			}
		}
	}

	envelopes := map[string][]float64{
		"bass":   bass,
		"vocals": vocals,
		"lead":   lead,
		"drums":  flux,
	}

	out := make(map[string]Detection, len(envelopes))
	for name, env := range envelopes {
		norm := normalize(env)
		peaks := peakPick(norm, 3, 3, delta)
		onsets := make([]float64, len(peaks))
		for i, p := range peaks {
			onsets[i] = sp.FrameTime(p)
		}
		out[name] = Detection{Onsets: onsets, BPM: bpm, Envelope: norm}
	}
	return out
}
