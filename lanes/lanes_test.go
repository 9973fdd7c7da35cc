package lanes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notefall/charter/model"
	"github.com/notefall/charter/spectral"
)

func TestParseStrategy(t *testing.T) {
	assert := assert.New(t)

	for name, want := range map[string]Strategy{
		"":           Sequential,
		"sequential": Sequential,
		"FREQUENCY":  Frequency,
		"random":     Random,
	} {
		got, err := ParseStrategy(name)
		assert.NoError(err)
		assert.Equal(want, got)
	}

	_, err := ParseStrategy("roundrobin")
	assert.ErrorIs(err, model.ErrInvalidConfig)
}

func TestSequentialWrapsAround(t *testing.T) {
	notes := make([]model.Note, 8)
	out := Assigner{Strategy: Sequential, NumLanes: 4}.Assign(notes, nil)

	assert := assert.New(t)
	assert.Equal([]int{0, 1, 2, 3, 0, 1, 2, 3}, lanesOf(out))
}

func TestFrequencyFallsBackWithoutSpectrogram(t *testing.T) {
	notes := make([]model.Note, 5)
	out := Assigner{Strategy: Frequency, NumLanes: 4}.Assign(notes, nil)

	assert := assert.New(t)
	assert.Equal([]int{0, 1, 2, 3, 0}, lanesOf(out))
}

func TestFrequencyPicksDominantBand(t *testing.T) {
	// frame 0 has all its energy at ~43 Hz, frame 1 at ~1012 Hz
	frames := [][]float64{make([]float64, 50), make([]float64, 50)}
	frames[0][2] = 5
	frames[1][47] = 5
	sp := &spectral.Spectrogram{Frames: frames, SampleRate: 44100, FFTSize: 2048, HopSize: 512}

	notes := []model.Note{{Time: 0}, {Time: sp.FrameTime(1)}}
	out := Assigner{Strategy: Frequency, NumLanes: 4}.Assign(notes, sp)

	assert := assert.New(t)
	assert.Equal([]int{0, 2}, lanesOf(out))
}

func TestFrequencyFiveLanes(t *testing.T) {
	frames := [][]float64{make([]float64, 50)}
	frames[0][2] = 5 // low band dominates
	sp := &spectral.Spectrogram{Frames: frames, SampleRate: 44100, FFTSize: 2048, HopSize: 512}

	out := Assigner{Strategy: Frequency, NumLanes: 5}.Assign([]model.Note{{Time: 0}}, sp)

	assert := assert.New(t)
	assert.Equal(1, out[0].Lane)
}

func TestRandomIsSeededAndBounded(t *testing.T) {
	assert := assert.New(t)

	first := Assigner{Strategy: Random, NumLanes: 4, Seed: 42}.Assign(make([]model.Note, 20), nil)
	second := Assigner{Strategy: Random, NumLanes: 4, Seed: 42}.Assign(make([]model.Note, 20), nil)
	assert.Equal(lanesOf(first), lanesOf(second))

	for _, n := range first {
		assert.GreaterOrEqual(n.Lane, 0)
		assert.Less(n.Lane, 4)
	}

	other := Assigner{Strategy: Random, NumLanes: 4, Seed: 43}.Assign(make([]model.Note, 20), nil)
	assert.NotEqual(lanesOf(first), lanesOf(other))
}

func lanesOf(notes []model.Note) []int {
	out := make([]int, len(notes))
	for i, n := range notes {
		out[i] = n.Lane
	}
	return out
}
