package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func TestHannWindowShape(t *testing.T) {
	w := HannWindow(2048)

	assert := assert.New(t)
	assert.Len(w, 2048)
	assert.InDelta(0.0, w[0], 1e-9)
	assert.InDelta(0.0, w[2047], 1e-9)
	assert.InDelta(1.0, w[1023], 1e-4) // near the center
}

func TestTransformInverseRoundTrip(t *testing.T) {
	samples := sine(440, 44100, 2048)
	spectrum := TransformFrame(samples, 2048, nil)
	back := InverseTransform(spectrum)

	assert := assert.New(t)
	assert.Len(back, 2048)
	for i := 0; i < 2048; i += 97 {
		assert.InDelta(samples[i], back[i], 1e-6)
	}
}

func TestComputeFindsToneBin(t *testing.T) {
	sp := Compute(sine(440, 44100, 44100), 44100)

	assert := assert.New(t)
	assert.Greater(sp.NumFrames(), 0)
	assert.Len(sp.Frames[0], 2048/2+1)

	maxBin := 0
	frame := sp.Frames[sp.NumFrames()/2]
	for k, mag := range frame {
		if mag > frame[maxBin] {
			maxBin = k
		}
	}
	// 440 Hz is bin 440/(44100/2048) ~ 20.4
	assert.InDelta(440.0, sp.BinFrequency(maxBin), sp.BinFrequency(1)*1.5)
}

func TestComputeEmptyInput(t *testing.T) {
	sp := Compute(nil, 44100)

	assert := assert.New(t)
	assert.Equal(0, sp.NumFrames())
	assert.Nil(sp.Rebin(100))
}

func TestFrameTimeAndNearestFrame(t *testing.T) {
	sp := Compute(sine(440, 44100, 44100), 44100)

	assert := assert.New(t)
	assert.InDelta(512.0/44100.0, sp.FrameTime(1), 1e-9)
	assert.Equal(10, sp.NearestFrame(sp.FrameTime(10)))
	assert.Equal(0, sp.NearestFrame(-1))
	assert.Equal(sp.NumFrames()-1, sp.NearestFrame(1e9))
}

func TestRebinPreservesEnergy(t *testing.T) {
	sp := Compute(sine(440, 44100, 22050), 44100)
	banded := sp.Rebin(100)

	assert := assert.New(t)
	assert.Len(banded, sp.NumFrames())

	var frameSum, bandSum float64
	for _, mag := range sp.Frames[0] {
		frameSum += mag
	}
	for _, v := range banded[0].Bins {
		bandSum += v
	}
	assert.InDelta(frameSum, bandSum, 1e-6)
	assert.InDelta(sp.FrameTime(3), banded[3].Time, 1e-9)
}
