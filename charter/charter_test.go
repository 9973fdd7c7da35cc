package charter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notefall/charter/audio"
	"github.com/notefall/charter/logger"
	"github.com/notefall/charter/model"
)

func silentBuffer(seconds float64, channels int) audio.Buffer {
	return audio.Buffer{
		Samples:    make([]float64, int(seconds*44100)*channels),
		SampleRate: 44100,
		Channels:   channels,
	}
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	assert := assert.New(t)

	for name, cfg := range map[string]model.Config{
		"negative bpm":       {BPM: -1, GridDivision: 4},
		"zero grid division": {GridDivision: 0},
		"negative sustain":   {GridDivision: 4, SustainThreshold: -0.1},
		"negative hold gap":  {GridDivision: 4, HoldGap: -1},
		"bad lane strategy":  {GridDivision: 4, LaneStrategy: "spiral"},
		"bad onset strategy": {GridDivision: 4, OnsetStrategy: "psychic"},
	} {
		_, err := NewGenerator(cfg, nil)
		assert.ErrorIs(err, model.ErrInvalidConfig, name)
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g, err := NewGenerator(DefaultConfig(), nil)

	assert := assert.New(t)
	assert.NoError(err)
	assert.NotNil(g)
}

func TestGenerateAllSilentBuffer(t *testing.T) {
	log, recorded := logger.NewTestLogger()
	g, err := NewGenerator(DefaultConfig(), log)

	assert := assert.New(t)
	assert.NoError(err)

	charts, err := g.GenerateAll(silentBuffer(0.5, 2), "song", "vocals")
	assert.NoError(err)
	assert.Len(charts, 4)

	wantColumns := []int{4, 4, 4, 5}
	wantLevels := []string{"Easy", "Normal", "Hard", "Expert"}
	for i, c := range charts {
		assert.Equal("song", c.SongID)
		assert.Equal("vocals", c.Instrument)
		assert.Equal(wantLevels[i], c.Difficulty)
		assert.Equal(wantColumns[i], c.Columns)
		assert.Equal(120.0, c.BPM)
		assert.Empty(c.Notes)
	}

	assert.Greater(recorded.Len(), 0)
}

func TestGenerateAllFillEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FillEmpty = true
	g, err := NewGenerator(cfg, nil)

	assert := assert.New(t)
	assert.NoError(err)

	charts, err := g.GenerateAll(silentBuffer(2, 1), "song", "bass")
	assert.NoError(err)

	// one note per beat at the 120 BPM fallback tempo, lanes cycling
	easy := charts[0]
	assert.Len(easy.Notes, 4)
	assert.InDelta(0.5, easy.Notes[1].Time, 1e-9)
	assert.Equal(1, easy.Notes[1].Col)
	assert.Equal(0, easy.Notes[0].Col)
}

func TestGenerateAllBPMOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BPM = 97
	g, err := NewGenerator(cfg, nil)

	assert := assert.New(t)
	assert.NoError(err)

	charts, err := g.GenerateAll(silentBuffer(0.5, 1), "song", "drums")
	assert.NoError(err)
	for _, c := range charts {
		assert.Equal(97.0, c.BPM)
	}
}

func TestGenerateBatch(t *testing.T) {
	log, _ := logger.NewTestLogger()
	g, err := NewGenerator(DefaultConfig(), log)

	assert := assert.New(t)
	assert.NoError(err)

	results := g.GenerateBatch(silentBuffer(0.5, 2), "song", []string{"vocals", "bass"})
	assert.Len(results, 2)
	assert.Equal("vocals", results[0].Instrument)
	assert.Equal("bass", results[1].Instrument)
	for _, r := range results {
		assert.NoError(r.Err)
		assert.Len(r.Charts, 4)
	}
}

func TestGenerateBatchMultiBand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MultiBand = true
	log, recorded := logger.NewTestLogger()
	g, err := NewGenerator(cfg, log)

	assert := assert.New(t)
	assert.NoError(err)

	// "theremin" has no dedicated band and rides the full-spectrum flux
	results := g.GenerateBatch(silentBuffer(0.5, 2), "song", []string{"drums", "theremin"})
	assert.Len(results, 2)
	for _, r := range results {
		assert.NoError(r.Err)
		assert.Len(r.Charts, 4)
		for _, c := range r.Charts {
			assert.Empty(c.Notes)
		}
	}

	assert.Greater(recorded.Len(), 0)
}

func TestBeatAlignedNotes(t *testing.T) {
	assert := assert.New(t)

	notes := beatAlignedNotes(120, 2)
	assert.Len(notes, 4)
	assert.InDelta(1.5, notes[3].Time, 1e-9)

	// a zero tempo falls back rather than looping forever
	assert.NotEmpty(beatAlignedNotes(0, 1))
	assert.Empty(beatAlignedNotes(120, 0))
}
