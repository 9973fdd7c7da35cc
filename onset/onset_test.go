package onset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notefall/charter/model"
)

func TestForStrategy(t *testing.T) {
	assert := assert.New(t)

	d, err := ForStrategy("")
	assert.NoError(err)
	assert.IsType(EnergyDetector{}, d)

	d, err = ForStrategy("energy")
	assert.NoError(err)
	assert.IsType(EnergyDetector{}, d)

	d, err = ForStrategy("flux")
	assert.NoError(err)
	assert.IsType(FluxDetector{}, d)

	_, err = ForStrategy("wavelets")
	assert.ErrorIs(err, model.ErrInvalidConfig)
}

func TestSmooth(t *testing.T) {
	out := smooth([]float64{1, 2, 3, 4, 5}, 3)

	assert := assert.New(t)
	assert.Equal([]float64{1.5, 2, 3, 4, 4.5}, out)
	assert.Nil(smooth(nil, 3))
}

func TestRelativePeaks(t *testing.T) {
	peaks := relativePeaks([]float64{0, 1, 0.5, 2, 0.5, 1.5, 0}, 0.5)

	assert := assert.New(t)
	assert.Equal([]int{3, 5}, peaks)
	assert.Nil(relativePeaks([]float64{1, 2}, 0.5))
}

func TestBpmFromIntervals(t *testing.T) {
	assert := assert.New(t)

	// peaks half a second apart
	assert.InDelta(120.0, bpmFromIntervals([]float64{0, 0.5, 1.0, 1.5}), 1.0)

	// too few peaks falls back to the default
	assert.Equal(120.0, bpmFromIntervals([]float64{0.25}))
	assert.Equal(120.0, bpmFromIntervals(nil))

	// implausibly fast peaks clamp to the ceiling
	assert.Equal(240.0, bpmFromIntervals([]float64{0, 0.01, 0.02}))
}

func TestEnergyDetectorFindsBursts(t *testing.T) {
	// two seconds of silence with 60ms tone bursts every half second
	const sampleRate = 44100
	samples := make([]float64, 2*sampleRate)
	for _, start := range []float64{0, 0.5, 1.0, 1.5} {
		begin := int(start * sampleRate)
		for i := 0; i < 2646; i++ {
			samples[begin+i] = math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate)
		}
	}

	det := EnergyDetector{}.Detect(samples, sampleRate)

	assert := assert.New(t)
	assert.GreaterOrEqual(len(det.Onsets), 2)
	for _, onset := range det.Onsets {
		nearest := math.Round(onset/0.5) * 0.5
		assert.InDelta(nearest, onset, 0.15)
	}
	assert.GreaterOrEqual(det.BPM, 60.0)
	assert.LessOrEqual(det.BPM, 240.0)
}

func TestEnergyDetectorEmptyInput(t *testing.T) {
	det := EnergyDetector{}.Detect(nil, 44100)

	assert := assert.New(t)
	assert.Empty(det.Onsets)
	assert.Equal(120.0, det.BPM)
}
