package onset

import (
	"math"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/spectral"
)

// FluxDetector sums positive per-bin magnitude increases frame to frame,
// peak-picks the normalized envelope against Delta with a 3-frame
// look-back/look-ahead, and estimates tempo by autocorrelation.
type FluxDetector struct {
	Delta float64 // peak threshold on the normalized envelope
}

func (d FluxDetector) Detect(samples []float64, sampleRate int) Detection {
	sp := spectral.Compute(samples, sampleRate)
	return d.fromSpectrogram(sp)
}

func (d FluxDetector) fromSpectrogram(sp *spectral.Spectrogram) Detection {
	env := Flux(sp)
	norm := normalize(env)
	peaks := peakPick(norm, 3, 3, d.Delta)

	onsets := make([]float64, len(peaks))
	for i, p := range peaks {
		onsets[i] = sp.FrameTime(p)
	}

	return Detection{
		Onsets:   onsets,
		BPM:      bpmFromAutocorrelation(env, sp.FramesPerSecond()),
		Envelope: norm,
	}
}

// Flux computes the spectral-flux envelope, one value per frame. The first
// frame has no predecessor and stays zero.
func Flux(sp *spectral.Spectrogram) []float64 {
	env := make([]float64, sp.NumFrames())
	for t := 1; t < sp.NumFrames(); t++ {
		var sum float64
		prev := sp.Frames[t-1]
		for k, mag := range sp.Frames[t] {
			if diff := mag - prev[k]; diff > 0 {
				sum += diff
			}
		}
		env[t] = sum
	}
	return env
}

func normalize(env []float64) []float64 {
	out := make([]float64, len(env))
	var max float64
	for _, v := range env {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		copy(out, env)
		return out
	}
	for i, v := range env {
		out[i] = v / max
	}
	return out
}

// peakPick returns indices beating the maxima of their pre-window and
// post-window and exceeding delta.
func peakPick(env []float64, pre, post int, delta float64) []int {
	var peaks []int
	n := len(env)
	for i := 1; i < n; i++ {
		start := i - pre
		if start < 0 {
			start = 0
		}
		left := math.Inf(-1)
		for _, v := range env[start:i] {
			if v > left {
				left = v
			}
		}

		right := math.Inf(-1)
		end := i + 1 + post
		if end > n {
			end = n
		}
		for _, v := range env[i+1 : end] {
			if v > right {
				right = v
			}
		}

		if env[i] > left && env[i] > right && env[i] > delta {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// bpmFromAutocorrelation searches envelope lags corresponding to the
// 40-200 BPM range for the strongest autocorrelation. Envelopes too short
// to correlate, or with no valid lag, fall back to the default tempo.
func bpmFromAutocorrelation(env []float64, framesPerSecond float64) float64 {
	n := len(env)
	if n < 4 {
		return constants.DefaultBPM
	}

	ac := make([]float64, n)
	for lag := 1; lag < n/2; lag++ {
		var sum float64
		for i := 0; i < n-lag; i++ {
			sum += env[i] * env[i+lag]
		}
		ac[lag] = sum
	}

	bestLag := 0
	bestVal := 0.0
	for lag := 1; lag < n/2; lag++ {
		bpm := 60.0 * framesPerSecond / float64(lag)
		if bpm < constants.MinAutocorrBPM || bpm > constants.MaxAutocorrBPM {
			continue
		}
		if ac[lag] > bestVal {
			bestVal = ac[lag]
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return constants.DefaultBPM
	}
	return 60.0 * framesPerSecond / float64(bestLag)
}
