// Package onset turns a signal into candidate note times plus a tempo
// estimate. Two strategies exist behind one interface: a single-band
// energy envelope and a spectral-flux detector with autocorrelation tempo.
package onset

import (
	"fmt"
	"math"
	"strings"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/model"
	"github.com/notefall/charter/spectral"
	"github.com/notefall/charter/util"
)

// Detection is the result of one onset pass.
type Detection struct {
	Onsets   []float64 // seconds
	BPM      float64
	Envelope []float64 // per-hop onset strength
}

// Detector is a selectable onset strategy.
type Detector interface {
	Detect(samples []float64, sampleRate int) Detection
}

// ForStrategy maps a configuration name to a detector.
func ForStrategy(name string) (Detector, error) {
	switch strings.ToLower(name) {
	case "", "energy":
		return EnergyDetector{}, nil
	case "flux":
		return FluxDetector{Delta: constants.DefaultFluxDelta}, nil
	default:
		return nil, fmt.Errorf("%w: unknown onset strategy %q", model.ErrInvalidConfig, name)
	}
}

// EnergyDetector picks peaks in the smoothed per-frame spectral energy and
// estimates tempo from inter-peak spacing.
type EnergyDetector struct{}

func (EnergyDetector) Detect(samples []float64, sampleRate int) Detection {
	sp := spectral.Compute(samples, sampleRate)

	env := make([]float64, sp.NumFrames())
	for i, frame := range sp.Frames {
		var sum float64
		for _, mag := range frame {
			sum += mag * mag
		}
		env[i] = math.Sqrt(sum)
	}

	smoothed := smooth(env, 3)
	peaks := relativePeaks(smoothed, 0.5)

	onsets := make([]float64, len(peaks))
	for i, p := range peaks {
		onsets[i] = sp.FrameTime(p)
	}

	return Detection{
		Onsets:   onsets,
		BPM:      bpmFromIntervals(onsets),
		Envelope: smoothed,
	}
}

// smooth applies a centered moving average.
func smooth(data []float64, window int) []float64 {
	if len(data) == 0 {
		return nil
	}
	half := window / 2
	out := make([]float64, len(data))
	for i := range data {
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half + 1
		if end > len(data) {
			end = len(data)
		}
		var sum float64
		for _, v := range data[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// relativePeaks returns indices that exceed ratio*max and both neighbors.
func relativePeaks(data []float64, ratio float64) []int {
	if len(data) < 3 {
		return nil
	}
	max := math.Inf(-1)
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	threshold := max * ratio

	var peaks []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] > threshold && data[i] > data[i-1] && data[i] > data[i+1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// bpmFromIntervals averages the first few inter-peak intervals. Fewer than
// two peaks falls back to the default tempo.
func bpmFromIntervals(peaks []float64) float64 {
	if len(peaks) < 2 {
		return constants.DefaultBPM
	}
	n := len(peaks)
	if n > 20 {
		n = 20
	}
	var sum float64
	for i := 1; i < n; i++ {
		sum += peaks[i] - peaks[i-1]
	}
	avg := sum / float64(n-1)
	return util.Clamp(60.0/avg, constants.MinBPM, constants.MaxBPM)
}
