// Package spectral is the transform layer every later pipeline stage sits
// on: windowed forward/inverse FFTs and the short-time Fourier transform
// producing magnitude spectrograms.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/model"
)

// HannWindow returns an n-point Hann window,
// w[i] = 0.5*(1 - cos(2*pi*i/(n-1))).
func HannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// TransformFrame multiplies samples by window, zero-pads to fftSize and
// returns the forward FFT. A nil window means rectangular. No
// normalization is applied here.
func TransformFrame(samples []float64, fftSize int, window []float64) []complex128 {
	in := make([]complex128, fftSize)
	for i := 0; i < fftSize && i < len(samples); i++ {
		s := samples[i]
		if window != nil {
			s *= window[i]
		}
		in[i] = complex(s, 0)
	}
	return fft.FFT(in)
}

// InverseTransform returns the real part of the inverse FFT. The result
// carries the 1/N scale, so overlap-added frames reconstruct the signal
// directly.
func InverseTransform(spectrum []complex128) []float64 {
	out := fft.IFFT(spectrum)
	res := make([]float64, len(out))
	for i, c := range out {
		res[i] = real(c)
	}
	return res
}

// Spectrogram is the magnitude STFT of a signal: one frame per hop, each
// frame holding FFTSize/2+1 bins (real-signal symmetry). It is derived
// data; compute it per pass and treat it as read-only once shared.
type Spectrogram struct {
	Frames     [][]float64
	SampleRate int
	FFTSize    int
	HopSize    int
}

// Compute runs the STFT over samples at the fixed 2048/512 frame/hop.
// The tail frame is zero-padded. Empty input yields an empty spectrogram.
func Compute(samples []float64, sampleRate int) *Spectrogram {
	sp := &Spectrogram{
		SampleRate: sampleRate,
		FFTSize:    constants.FFTSize,
		HopSize:    constants.HopSize,
	}
	if len(samples) == 0 {
		return sp
	}

	numFrames := 1
	if len(samples) > sp.FFTSize {
		numFrames = (len(samples)-sp.FFTSize)/sp.HopSize + 1
	}

	window := HannWindow(sp.FFTSize)
	frame := make([]float64, sp.FFTSize)
	sp.Frames = make([][]float64, 0, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * sp.HopSize
		for j := 0; j < sp.FFTSize; j++ {
			if start+j < len(samples) {
				frame[j] = samples[start+j]
			} else {
				frame[j] = 0
			}
		}
		spectrum := TransformFrame(frame, sp.FFTSize, window)
		bins := make([]float64, sp.FFTSize/2+1)
		for k := range bins {
			bins[k] = cmplx.Abs(spectrum[k])
		}
		sp.Frames = append(sp.Frames, bins)
	}
	return sp
}

func (s *Spectrogram) NumFrames() int {
	return len(s.Frames)
}

// FrameTime maps a frame index to seconds.
func (s *Spectrogram) FrameTime(i int) float64 {
	return float64(i*s.HopSize) / float64(s.SampleRate)
}

// BinFrequency maps a bin index to its center frequency in Hz.
func (s *Spectrogram) BinFrequency(k int) float64 {
	return float64(k) * float64(s.SampleRate) / float64(s.FFTSize)
}

// FramesPerSecond is the envelope sampling rate implied by the hop.
func (s *Spectrogram) FramesPerSecond() float64 {
	return float64(s.SampleRate) / float64(s.HopSize)
}

// NearestFrame returns the frame index closest in time to t, clamped to
// valid indices. With a regular hop this is the round of t against the
// frame rate, which matches nearest-by-millisecond lookup.
func (s *Spectrogram) NearestFrame(t float64) int {
	if len(s.Frames) == 0 {
		return 0
	}
	idx := int(math.Round(t * s.FramesPerSecond()))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Frames) {
		idx = len(s.Frames) - 1
	}
	return idx
}

// Rebin sums each frame's magnitudes into fixed-width frequency bands and
// pairs them with frame times. The hold detector consumes these so that
// Hz/width bin indexing is exact.
func (s *Spectrogram) Rebin(widthHz float64) []model.Spectrum {
	if widthHz <= 0 || len(s.Frames) == 0 {
		return nil
	}
	nyquist := float64(s.SampleRate) / 2
	numBands := int(nyquist/widthHz) + 1

	out := make([]model.Spectrum, len(s.Frames))
	for i, frame := range s.Frames {
		bands := make([]float64, numBands)
		for k, mag := range frame {
			b := int(s.BinFrequency(k) / widthHz)
			if b >= numBands {
				b = numBands - 1
			}
			bands[b] += mag
		}
		out[i] = model.Spectrum{Time: s.FrameTime(i), Bins: bands}
	}
	return out
}
